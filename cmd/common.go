package cmd

import (
	"context"
	"os"
	"os/signal"

	"repack-catalog/config"
	"repack-catalog/crawler"
	"repack-catalog/db"
	"repack-catalog/logger"
	"repack-catalog/service"

	"go.uber.org/zap"
)

// bootstrap handles shared initialization logic for commands: configuration,
// database, site registry, blacklist.
func bootstrap() (config.Config, *service.Engine) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalw("Failed to load configuration", zap.Error(err))
	}
	if flagDatabase != "" {
		cfg.DatabasePath = flagDatabase
	}

	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		logger.Log.Fatalw("Failed to open database",
			zap.String("path", cfg.DatabasePath), zap.Error(err))
	}
	logger.Log.Infow("Database initialized", zap.String("path", cfg.DatabasePath))

	registry := crawler.NewRegistry()
	registry.Register(crawler.NewFitGirl(cfg))

	blacklist := crawler.NewBlacklist(cfg.BlacklistFile)

	return cfg, service.New(database, registry, blacklist)
}

// signalContext returns a context cancelled by Ctrl-C, so crawls stop
// between page fetches.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// resolveSite returns the adapter for id, or exits when it is unknown.
func resolveSite(engine *service.Engine, id string) crawler.Site {
	site := engine.Sites.Get(id)
	if site == nil {
		logger.Log.Fatalw("Unknown site", zap.String("site", id))
	}
	return site
}
