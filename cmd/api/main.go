package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"sharedeck/internal/admin"
	"sharedeck/internal/allocation"
	"sharedeck/internal/auth"
	"sharedeck/internal/backfill"
	"sharedeck/internal/card"
	"sharedeck/internal/cardsync"
	"sharedeck/internal/config"
	"sharedeck/internal/db"
	"sharedeck/internal/deck"
	"sharedeck/internal/logging"
	"sharedeck/internal/planner"
	"sharedeck/internal/pricing"
	"sharedeck/internal/purchase"
	"sharedeck/internal/router"
	"sharedeck/internal/storage"
	"sharedeck/internal/store"
	"sharedeck/internal/user"
)

func main() {
	// ───────────────────────── ENV ─────────────────────────
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── DB ─────────────────────────
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

	// ───────────────────────── CACHE + STORAGE ─────────────────────────
	cache := card.OpenCache(ctx, cfg.Redis)

	var objects cardsync.ObjectStore
	if cfg.R2.Enabled() {
		r2, err := storage.NewR2Client(ctx, cfg.R2)
		if err != nil {
			slog.Error("r2 init failed", "error", err)
			os.Exit(1)
		}
		objects = r2
	} else {
		slog.Warn("r2 not configured, card images will point at the source site")
	}

	// ───────────────────────── REPOS ─────────────────────────
	conn := database.DB
	userRepo := user.NewPostgresRepository(conn)
	cardRepo := card.NewPostgresRepository(conn)
	deckRepo := deck.NewPostgresRepository(conn)
	storeRepo := store.NewPostgresRepository(conn)
	purchaseRepo := purchase.NewPostgresRepository(conn)
	priceRepo := pricing.NewPostgresRepository(conn)
	allocationRepo := allocation.NewPostgresRepository(conn)

	// ───────────────────────── SERVICES ─────────────────────────
	tokens := auth.NewJWTManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	prices := backfill.NewService(conn)

	userService := user.NewService(userRepo)
	cardService := card.NewService(cardRepo, cache)
	deckService := deck.NewService(deckRepo, cardService)
	storeService := store.NewService(storeRepo, prices)
	purchaseService := purchase.NewService(purchaseRepo, cardService, storeRepo, prices)
	priceService := pricing.NewService(priceRepo, purchaseRepo, storeRepo)
	planService := planner.NewService(pricing.NewLoader(conn))
	allocationService := allocation.NewService(allocationRepo, purchaseRepo, storeRepo)

	scraper, err := cardsync.NewScraper(cfg.Scraper.CardListURL, cfg.Scraper.Timeout)
	if err != nil {
		slog.Error("scraper init failed", "error", err)
		os.Exit(1)
	}
	syncer := cardsync.NewSyncer(scraper, objects, cardRepo, cardService)
	adminService := admin.NewService(conn, cardRepo, cardService, syncer, cfg.R2.PublicURL)

	// ───────────────────────── ROUTER ─────────────────────────
	r := router.NewRouter(router.Deps{
		Tokens:         tokens,
		Resolver:       userService,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Handlers: router.Handlers{
			Users:       user.NewHandler(userService),
			Cards:       card.NewHandler(cardService),
			Decks:       deck.NewHandler(deckService),
			Stores:      store.NewHandler(storeService),
			Purchases:   purchase.NewHandler(purchaseService),
			Prices:      pricing.NewHandler(priceService),
			Plans:       planner.NewHandler(planService),
			Allocations: allocation.NewHandler(allocationService),
			Admin:       admin.NewHandler(adminService),
		},
	})

	// ───────────────────────── START ─────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("api listening", "addr", srv.Addr, "env", cfg.Server.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
