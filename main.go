package main

import (
	"flag"
	"log"

	"learnhub_client/internal/app"
	"learnhub_client/internal/config"
	"learnhub_client/pkg/configwatcher"
	"learnhub_client/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs", "directory holding config.yaml")
	watch := flag.Bool("watch", false, "reload the stub config on file change")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg.Server.Mode)
	defer logger.Log.Sync()

	if *watch {
		go configwatcher.WatchConfig(*configPath+"/config.yaml", func(newCfg *config.Config) {
			logger.Log.Info("Stub config reloaded; restart to apply server settings")
		})
	}

	application := app.NewApp(cfg)
	application.Run()
}
