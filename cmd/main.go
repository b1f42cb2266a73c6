package main

import (
	"log"

	"alertwatch/config"
	"alertwatch/routes"
	"alertwatch/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := utils.InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer utils.Logger.Sync()

	if err := config.InitDB(cfg, utils.Logger); err != nil {
		log.Fatalf("init database: %v", err)
	}

	r := routes.SetupRouter(cfg)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
