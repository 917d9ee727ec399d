package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config concentra toda la configuración por env. Un .env local se carga
// si existe (dev); en deploy las vars vienen del entorno directo.
type Config struct {
	Addr string

	// DBDSN vacío => repos in-memory (dev/tests).
	DBDSN string

	// JWTSecret vacío => modo dev sin verifier (headers X-Debug-*).
	JWTSecret string

	// NotifyWebhookURL vacío => notificaciones por consola (log).
	NotifyWebhookURL string

	LogLevel  string
	LogFormat string
	AppName   string
}

func Load() Config {
	// best-effort: sin .env no pasa nada
	_ = godotenv.Load()

	addr := ":8080"
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		addr = ":" + v
	}

	return Config{
		Addr:             addr,
		DBDSN:            os.Getenv("DB_DSN"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		NotifyWebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
		LogFormat:        os.Getenv("LOG_FORMAT"),
		AppName:          os.Getenv("APP_NAME"),
	}
}
