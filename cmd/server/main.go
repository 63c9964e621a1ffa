package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"dungeon-crawler/internal/config"
	"dungeon-crawler/internal/server"
	"dungeon-crawler/internal/version"
	"dungeon-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
)

func init() {
	logger.Init()
}

func main() {
	var (
		configPath string
		seed       int64
		addr       string
	)
	flag.StringVar(&configPath, "config", "config.toml", "Path to TOML config (missing file = defaults)")
	// 0 - взять из конфига; там 0 означает случайное зерно
	flag.Int64Var(&seed, "seed", 0, "Master seed override (0 keeps the config value)")
	flag.StringVar(&addr, "addr", "", "Bind address override, e.g. :8080")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load config")
	}
	if seed != 0 {
		cfg.Game.Seed = seed
	}
	if addr != "" {
		cfg.Server.BindAddress = addr
	}
	if port := os.Getenv("CD_PORT"); port != "" && addr == "" {
		cfg.Server.BindAddress = ":" + port
	}

	// Переменные окружения важнее конфига
	if _, ok := os.LookupEnv("LOG_LEVEL"); !ok {
		logger.Configure(cfg.Logging.Level, cfg.Logging.Format)
	}

	logger.Log.WithFields(logrus.Fields{
		"config": configPath,
		"seed":   cfg.Game.Seed,
		"save":   cfg.Storage.SavePath,
	}).Info("Starting dungeon server...")
	logger.Log.Info(version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg).Run(ctx); err != nil {
		logger.Log.WithError(err).Fatal("Server error")
	}
	logger.Log.Info("Done.")
}
