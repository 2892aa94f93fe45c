package main

import (
	"clinic/config"
	"clinic/di"
	"clinic/helper"
	"clinic/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Clinic Reservation API
// @version 1.0
// @description Reservation slot booking for the clinic call center.
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}

	http.Serve()
}
