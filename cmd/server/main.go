// Package main - Entry point for the baticost estimation server
package main

import (
	"net/http"
	"time"

	"github.com/caarlos0/env/v9"
	"go.uber.org/zap"

	"baticost/api"
	"baticost/core/catalog"
	"baticost/internal/logging"
)

const version = "0.1.0"

// serverEnv is the environment configuration of the server process
type serverEnv struct {
	Addr         string        `env:"ADDR" envDefault:":8080"`
	CatalogPath  string        `env:"CATALOG_PATH"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string        `env:"LOG_FORMAT" envDefault:"json"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
}

func main() {
	var cfg serverEnv
	if err := env.Parse(&cfg); err != nil {
		logging.Fatal("failed to parse environment", zap.Error(err))
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.Format = cfg.LogFormat
	if err := logging.Initialize(logCfg); err != nil {
		logging.Fatal("failed to initialize logging", zap.Error(err))
	}
	defer logging.Sync()

	store := catalog.MustNewStore(catalog.Builtin())
	if cfg.CatalogPath != "" {
		if err := store.ReloadFromFile(cfg.CatalogPath); err != nil {
			logging.Fatal("failed to load catalog",
				zap.String("path", cfg.CatalogPath), zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      api.NewServer(version, store),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logging.Info("baticost server listening",
		zap.String("addr", cfg.Addr),
		zap.String("version", version),
		zap.String("catalog_version", store.Current().Version))

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logging.Fatal("server stopped", zap.Error(err))
	}
}
