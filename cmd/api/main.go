package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/shinyyama/teamchat-backend/internal/config"
	"github.com/shinyyama/teamchat-backend/internal/db"
	"github.com/shinyyama/teamchat-backend/internal/logging"
	appmw "github.com/shinyyama/teamchat-backend/internal/middleware"
	"github.com/shinyyama/teamchat-backend/internal/repository"
	"github.com/shinyyama/teamchat-backend/internal/seed"
	"github.com/shinyyama/teamchat-backend/internal/server"
	"github.com/shinyyama/teamchat-backend/internal/view"
	"go.uber.org/zap"
)

// Set at build time with -ldflags.
var (
	gitSHA    = "dev"
	buildTime = ""
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}

	var views view.Invalidator = view.Nop{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			// Invalidation is best-effort; keep serving without it.
			logger.Warn("redis unreachable; view invalidations will be dropped", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		views = view.NewRedisInvalidator(rdb, logger.Named("view"))
	}

	var verifier appmw.TokenVerifier
	if cfg.FirebaseProjectID != "" {
		client, err := appmw.NewFirebaseVerifier(ctx, cfg.FirebaseProjectID, cfg.CredentialsFile)
		if err != nil {
			return err
		}
		verifier = client
	} else {
		logger.Warn("FIREBASE_PROJECT_ID not set; trusting " + appmw.ProfileHeader + " header")
	}

	srv := server.New(repos, server.Options{
		Logger:              logger,
		Views:               views,
		Verifier:            verifier,
		AllowedOrigins:      cfg.CORSAllowedOrigins,
		CaseSensitiveSearch: cfg.ChannelSearchCaseSensitive,
		SHA:                 gitSHA,
		BuildTime:           buildTime,
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", addr), zap.String("storage", cfg.StorageDriver))
		errCh <- srv.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openRepositories(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Set, error) {
	if cfg.UseMemory() {
		store := repository.NewMemoryStore()
		repos := store.Set()
		if _, err := seed.Into(ctx, repos, time.Now().UTC()); err != nil {
			return repository.Set{}, err
		}
		logger.Info("using in-memory storage with starter directory")
		return repos, nil
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		return repository.Set{}, err
	}
	if cfg.DBAutoMigrate {
		if err := db.Migrate(conn); err != nil {
			logger.Error("auto migrate error", zap.Error(err))
		}
	}
	return repository.NewGormSet(conn), nil
}
