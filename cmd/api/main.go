package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/lukasw/clubsite/internal/pkg/logger"
	"github.com/lukasw/clubsite/internal/server"
)

// @title Clubsite API
// @version 1.0
// @description Personal website backend with sport club event management and time tracking.

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// Missing .env is fine; configuration falls back to defaults and real env vars
	_ = godotenv.Load()

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed")
		os.Exit(1)
	}
}
