package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shinyyama/teamchat-backend/internal/config"
	"github.com/shinyyama/teamchat-backend/internal/db"
	"github.com/shinyyama/teamchat-backend/internal/repository"
	"github.com/shinyyama/teamchat-backend/internal/seed"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.UseMemory() {
		return fmt.Errorf("seed needs STORAGE_DRIVER=mysql; the memory driver seeds itself at startup")
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	canSeed, err := shouldSeed(ctx, repository.NewProfileRepository(gdb))
	if err != nil {
		return err
	}
	if !canSeed {
		log.Printf("profiles already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	var res *seed.Result
	err = gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Children first; the tables reference each other.
		for _, table := range []string{"reactions", "messages", "direct_messages", "channels", "profiles"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		var err error
		res, err = seed.Into(ctx, repository.NewGormSet(tx), time.Now().UTC())
		return err
	})
	if err != nil {
		return err
	}

	log.Printf("seeded %d profiles and %d channels", len(res.Profiles), len(res.Channels))
	return nil
}

func shouldSeed(ctx context.Context, profiles repository.ProfileRepository) (bool, error) {
	cnt, err := profiles.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count profiles: %w", err)
	}
	if cnt == 0 {
		return true, nil
	}
	force := os.Getenv("FORCE_SEED")
	return strings.EqualFold(force, "true"), nil
}
