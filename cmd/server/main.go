// Package main - Entry point for the waterblend API server
package main

import (
	"flag"
	"net/http"
	"os"

	"go.uber.org/zap"

	"waterblend/api"
	"waterblend/internal/config"
	"waterblend/internal/logging"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	cfgFile := flag.String("config", "", "config file path")
	flag.Parse()

	cfg := config.Get()
	if *cfgFile != "" {
		loaded, err := config.Load(*cfgFile)
		if err != nil {
			logging.Error("failed to load config", zap.Error(err))
			os.Exit(1)
		}
		config.Set(loaded)
		cfg = loaded
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Error("failed to initialize logging", zap.Error(err))
	}
	defer logging.Sync()

	server := api.NewServer(cfg)

	logging.Info("waterblend API listening", zap.String("addr", *addr))
	if err := http.ListenAndServe(*addr, server); err != nil {
		logging.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
}
