package main

import (
	"log"
	"net/http"
	"time"

	"pet-shelter-adoption/internal/adapters/auth/jwtauth"
	"pet-shelter-adoption/internal/adapters/notify/console"
	"pet-shelter-adoption/internal/adapters/notify/webhook"
	pg "pet-shelter-adoption/internal/adapters/storage/postgres"
	"pet-shelter-adoption/internal/config"
	"pet-shelter-adoption/internal/platform/httpclient"
	"pet-shelter-adoption/internal/platform/logger"
	"pet-shelter-adoption/internal/ports/auth"
	"pet-shelter-adoption/internal/ports/notify"
	"pet-shelter-adoption/internal/router"
)

func main() {
	cfg := config.Load()

	lg := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	var verifier auth.AuthVerifier // nil => modo dev con headers X-Debug-*
	if cfg.JWTSecret != "" {
		verifier = jwtauth.NewVerifier(cfg.JWTSecret)
	} else {
		lg.Warn("JWT_SECRET no configurado, autenticación en modo dev", nil)
	}

	var notifier notify.Notifier
	if cfg.NotifyWebhookURL != "" {
		n, err := webhook.New(httpclient.New(10*time.Second), cfg.NotifyWebhookURL)
		if err != nil {
			log.Fatalf("notify webhook: %v", err)
		}
		notifier = n
	} else {
		notifier = console.New(lg)
	}

	opts := router.Options{
		AuthVerifier: verifier,
		Notifier:     notifier,
		Logger:       lg,
	}

	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Fatalf("db open: %v", err)
		}
		defer db.Close()
		opts.DB = db
	} else {
		lg.Warn("DB_DSN no configurado, usando almacenamiento en memoria", nil)
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	lg.Info("starting server", map[string]any{"addr": cfg.Addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
