// Package main is the entry point for the bouncing sphere viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/bounce-box/internal/config"
	"github.com/Faultbox/bounce-box/internal/game"
	"github.com/Faultbox/bounce-box/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Sphere ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	if err := g.Run(); err != nil {
		logger.Error("run error", zap.Error(err))
		g.Close()
		logger.Sync()
		os.Exit(1)
	}

	g.Close()
	logger.Info("closed normally")
}
