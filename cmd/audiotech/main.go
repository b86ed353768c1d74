package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"audiotech/internal/config"
	"audiotech/internal/http/handlers"
	applog "audiotech/internal/log"
	"audiotech/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			applog.Error(nil, "log.file.open", err, map[string]any{"path": cfg.LogFile})
		} else {
			defer f.Close()
			applog.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	durable, sessions, closeStore, err := openStores(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	engine := handlers.NewViews(cfg.TemplatesDir)
	engine.Reload(true)

	deps := handlers.NewDeps(durable, sessions, cfg)
	app := handlers.NewApp(deps, handlers.AppOptions{Views: engine})

	applog.Info(nil, "server.start", map[string]any{"port": cfg.Port})
	if err := app.Listen(":" + cfg.Port); err != nil {
		applog.Error(nil, "server.stop", err, nil)
		os.Exit(1)
	}
}

// openStores picks Redis when REDIS_ADDR is set, SQLite with an in-process
// session store otherwise. Session keys expire after cfg.SessionIdle.
func openStores(cfg config.Config) (durable, sessions repos.Store, closeFn func(), err error) {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, nil, err
		}
		applog.Info(nil, "store.open", map[string]any{"kind": "redis", "addr": cfg.RedisAddr})
		rs := repos.NewRedisStore(client)
		return rs, rs.WithTTL(cfg.SessionIdle), func() { client.Close() }, nil
	}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		return nil, nil, nil, err
	}
	applog.Info(nil, "store.open", map[string]any{"kind": "sqlite", "dsn": cfg.DBDSN})
	return repos.NewKVRepo(db), repos.NewExpiringMemoryStore(cfg.SessionIdle), func() { db.Close() }, nil
}
