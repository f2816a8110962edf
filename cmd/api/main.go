package main

import (
	"context"
	"os"

	"github.com/yigit/attendance/internal/pkg/logger"
	"github.com/yigit/attendance/internal/server"
)

func main() {
	// NewServer loads config, connects, migrates and wires the router
	srv, err := server.NewServer(context.Background())
	if err != nil {
		// Uses the default logger from the logger package's init
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
