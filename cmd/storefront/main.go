package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopfront/storefront/internal/cart"
	"github.com/shopfront/storefront/internal/catalog"
	"github.com/shopfront/storefront/internal/config"
	"github.com/shopfront/storefront/internal/db"
	"github.com/shopfront/storefront/internal/events"
	"github.com/shopfront/storefront/internal/httpapi"
	"github.com/shopfront/storefront/internal/notify"
	"github.com/shopfront/storefront/internal/order"
	"github.com/shopfront/storefront/internal/storage"
)

func main() {
	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.Lshortfile)
	cfg := config.Load()

	// Durable storage backs the cart; the in-memory store plays the role of
	// session-scoped storage for the last order and cached notifier settings.
	var durable storage.Store
	if cfg.CartDBDSN != "" {
		if err := db.RunMigrations(cfg.CartDBDSN, logger); err != nil {
			logger.Fatalf("run migrations: %v", err)
		}
		database, err := db.Open(cfg.CartDBDSN)
		if err != nil {
			logger.Fatalf("open cart db: %v", err)
		}
		defer database.Close()
		durable = storage.NewPostgres(database)
	} else {
		durable = storage.NewFile(cfg.CartFile)
	}
	session := storage.NewMemory()

	cartStore := cart.NewStore(durable, cfg.TaxRate, logger)
	cartStore.Load(context.Background())

	deps := httpapi.Deps{
		Catalog:  catalog.NewClient(cfg.CatalogURL, cfg.CatalogTimeout),
		Cart:     cartStore,
		Archive:  order.NewArchive(session),
		Notifier: notify.NewTelegram(cfg.TelegramAPIURL, cfg.NotifyTimeout),
		Settings: notify.NewSettingsCache(session),
		Operator: notify.Settings{Token: cfg.TelegramToken, ChatID: cfg.TelegramChatID},
		Logger:   logger,
	}

	if cfg.RabbitURL != "" {
		conn, err := events.Dial(cfg.RabbitURL)
		if err != nil {
			logger.Fatalf("connect to rabbitmq: %v", err)
		}
		defer conn.Close()

		publisher, err := events.NewPublisher(conn)
		if err != nil {
			logger.Fatalf("create events publisher: %v", err)
		}
		defer publisher.Close()
		deps.Publisher = publisher
	}

	if !deps.Operator.Complete() {
		logger.Printf("telegram operator settings not configured; checkout notifications will be skipped")
	}

	router := httpapi.NewRouter(httpapi.NewHandler(deps))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("storefront listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Printf("shutdown signal received")
	case err := <-errCh:
		logger.Fatalf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown error: %v", err)
	}
}
