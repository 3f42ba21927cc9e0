package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/shinyyama/teamchat-backend/internal/config"
	"github.com/shinyyama/teamchat-backend/internal/db"
	"github.com/shinyyama/teamchat-backend/internal/repository"
	"github.com/shinyyama/teamchat-backend/internal/seed"
	"github.com/shinyyama/teamchat-backend/internal/service"
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
		return fmt.Errorf("seed-sample-messages needs STORAGE_DRIVER=mysql")
	}

	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}

	svcs := service.New(repository.NewGormSet(gdb), service.Options{})
	stats, err := seed.Samples(ctx, svcs)
	if err != nil {
		return err
	}
	if stats.Skipped {
		log.Printf("#general already has messages; skipping")
		return nil
	}
	log.Printf("done. messages=%d reactions=%d direct_messages=%d", stats.Messages, stats.Reactions, stats.DirectMessages)
	return nil
}
