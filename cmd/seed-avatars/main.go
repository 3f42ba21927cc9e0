package main

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/storage"
	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"github.com/shinyyama/teamchat-backend/internal/avatar"
	"github.com/shinyyama/teamchat-backend/internal/config"
	"github.com/shinyyama/teamchat-backend/internal/db"
	"github.com/shinyyama/teamchat-backend/internal/logging"
	"github.com/shinyyama/teamchat-backend/internal/repository"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

type Config struct {
	GeminiModel    string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash-image"`
	StorageBucket  string `env:"STORAGE_BUCKET,required"`
	TimeoutSeconds int    `env:"TIMEOUT_SECONDS" envDefault:"300"`
	ForceSeed      bool   `env:"FORCE_SEED" envDefault:"false"`
}

func main() {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to parse env: %v", err)
	}
	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	logger, err := logging.New(appCfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.TimeoutSeconds)*time.Second)
	defer cancel()

	gdb, err := db.Connect(appCfg)
	if err != nil {
		logger.Fatal("failed to connect db", zap.Error(err))
	}

	var opts []option.ClientOption
	if appCfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(appCfg.CredentialsFile))
	}
	storageClient, err := storage.NewClient(ctx, opts...)
	if err != nil {
		logger.Fatal("failed to init storage", zap.Error(err))
	}
	defer storageClient.Close()

	r := &avatar.Refresher{
		Profiles:    repository.NewProfileRepository(gdb),
		Placeholder: avatar.NewPlaceholder(),
		Uploader:    avatar.NewGCSUploader(storageClient, cfg.StorageBucket),
		Logger:      logger.Named("avatar"),
		Force:       cfg.ForceSeed,
	}
	gen, err := avatar.NewGeminiGenerator(ctx, cfg.GeminiModel)
	if err != nil {
		// Every profile falls back to its placeholder image.
		logger.Warn("gemini unavailable", zap.Error(err))
	} else {
		r.Generator = gen
	}

	stats, err := r.Run(ctx)
	if err != nil {
		logger.Fatal("seed-avatars failed", zap.Error(err))
	}
	logger.Info("seed-avatars completed",
		zap.Int("updated", stats.Updated),
		zap.Int("fallbacks", stats.Fallbacks),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed),
	)
}
