package main

import (
	"log"

	"github.com/juniper-commerce/marketplace-backend/cmd/server"
	"github.com/juniper-commerce/marketplace-backend/internal/config"
	"go.uber.org/zap"
)

var (
	srvAddr     = config.Env.ServerAddr
	environment = config.Env.Environment
)

func main() {
	logger, err := newLogger(environment)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	zap.ReplaceGlobals(logger)

	srv := server.NewServer(&server.ServerConfig{
		Addr:   srvAddr,
		Logger: logger,
	})
	srv.Run()
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
