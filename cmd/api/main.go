package main

import (
	"os"

	"github.com/yigit/uniconnect/internal/pkg/logger"
	"github.com/yigit/uniconnect/internal/server"
)

// @title UniConnect API
// @version 1.0
// @description API for the UniConnect campus social network
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Identity provider access token

func main() {
	os.Exit(run())
}

func run() int {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("UniConnect API failed to start")
		return 1
	}
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("UniConnect API stopped with errors")
		return 1
	}
	return 0
}
