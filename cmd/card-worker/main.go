package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"sharedeck/internal/card"
	"sharedeck/internal/cardsync"
	"sharedeck/internal/config"
	"sharedeck/internal/db"
	"sharedeck/internal/logging"
	"sharedeck/internal/storage"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if err := cfg.Database.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.Database)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx, database.DB); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
	}

	var objects cardsync.ObjectStore
	if cfg.R2.Enabled() {
		r2, err := storage.NewR2Client(ctx, cfg.R2)
		if err != nil {
			slog.Error("r2 init failed", "error", err)
			os.Exit(1)
		}
		objects = r2
	}

	scraper, err := cardsync.NewScraper(cfg.Scraper.CardListURL, cfg.Scraper.Timeout)
	if err != nil {
		slog.Error("scraper init failed", "error", err)
		os.Exit(1)
	}

	// The catalog cache is shared with the api, so a sync run clears it there too.
	cardRepo := card.NewPostgresRepository(database.DB)
	cards := card.NewService(cardRepo, card.OpenCache(ctx, cfg.Redis))
	syncer := cardsync.NewSyncer(scraper, objects, cardRepo, cards)

	cardsync.RunEvery(ctx, syncer, cfg.Scraper.Interval)
}
