package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/jezweb/better-chat-trigger/internal/auth"
	"github.com/jezweb/better-chat-trigger/internal/config"
	"github.com/jezweb/better-chat-trigger/internal/server"
	"github.com/jezweb/better-chat-trigger/internal/storage"
	"github.com/jezweb/better-chat-trigger/internal/storage/sqlite"
	"github.com/jezweb/better-chat-trigger/internal/telemetry"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(os.Getenv("CHAT_CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer("chat-trigger", logger)
		if err != nil {
			log.Fatalf("Failed to initialize tracer: %v", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
			}
		}()
	}

	var store storage.InvocationStore = storage.Noop{}
	if cfg.Storage.Type == "sqlite" {
		path := cfg.Storage.SQLite.Path
		if path == "" {
			path = "./data/chat-trigger.db"
		}
		sqlStore, err := sqlite.New(path)
		if err != nil {
			log.Fatalf("Failed to open storage: %v", err)
		}
		defer sqlStore.Close()
		store = sqlStore
		logger.Info("invocation storage enabled", slog.String("path", path))
	}

	srv := server.New(cfg.Server.Port, logger)

	triggers := cfg.Triggers
	if len(triggers) == 0 {
		triggers = []config.TriggerConfig{{}}
	}

	for _, t := range triggers {
		cc := t.ChatConfig()
		creds := auth.StaticSource{Username: t.Username, Password: t.Password}
		d := server.NewDispatcher(cc, creds, store, logger)
		srv.Router.HandleFunc("/"+cc.Path, d.Handle)
		logger.Info("trigger registered",
			slog.String("path", "/"+cc.Path),
			slog.String("mode", string(cc.Mode)),
			slog.String("auth", string(cc.Authentication)),
		)
	}

	if err := srv.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
