package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/manusiele/therapyflow-sub000/logger"
	"github.com/manusiele/therapyflow-sub000/src/config"
	"github.com/manusiele/therapyflow-sub000/src/server"

	_ "github.com/swaggo/files"
	_ "github.com/swaggo/gin-swagger"
)

// @title Session Service API
// @version 1.0
// @description Presence tracking, participant gating and video room management for therapy sessions

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.LogLevel)
	setupLogging()

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := srv.Run(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(slogger)
}
