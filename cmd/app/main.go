package main

import (
	"tourizto/config"
	"tourizto/di"
	"tourizto/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
