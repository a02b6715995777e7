package main

import (
	"os"

	"bridgewatch/internal/platform/logger"
)

func main() {
	// stdout carries results, logs go to stderr
	opt := logger.FromEnv()
	opt.Writer = os.Stderr
	logger.Init(opt)

	if err := newRoot(os.Stdout, os.Stderr).Execute(); err != nil {
		logger.Get().Error().Err(err).Msg("bridgewatch failed")
		os.Exit(1)
	}
}
