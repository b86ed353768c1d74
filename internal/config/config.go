package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	applog "audiotech/internal/log"
)

type Config struct {
	Port         string
	DBDSN        string
	LogFile      string
	RedisAddr    string
	Latency      time.Duration
	AdminEmail   string
	TemplatesDir string
	// SessionIdle bounds how long an untouched browser session keeps its
	// shell state and session-scoped storage. Zero keeps them forever.
	SessionIdle time.Duration
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads the process environment, after merging an optional .env file.
func Load() Config {
	_ = godotenv.Load()

	lat := 800 * time.Millisecond
	if v := os.Getenv("LATENCY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			lat = time.Duration(ms) * time.Millisecond
		}
	}

	idle := 24 * time.Hour
	if v := os.Getenv("SESSION_IDLE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			idle = d
		}
	}

	cfg := Config{
		Port:         env("PORT", "8080"),
		DBDSN:        env("DB_DSN", "audiotech.db"), // sqlite file in project root
		LogFile:      env("LOG_FILE", "./audiotech.log"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		Latency:      lat,
		AdminEmail:   env("ADMIN_EMAIL", "admin@admin.com"),
		TemplatesDir: env("TEMPLATES_DIR", "./web/templates"),
		SessionIdle:  idle,
	}
	applog.Info(nil, "config.load", map[string]any{
		"port":         cfg.Port,
		"db_dsn":       cfg.DBDSN,
		"log_file":     cfg.LogFile,
		"redis":        cfg.RedisAddr != "",
		"latency_ms":   cfg.Latency.Milliseconds(),
		"templates":    cfg.TemplatesDir,
		"session_idle": cfg.SessionIdle.String(),
	})
	return cfg
}
