package main

import (
	"fmt"

	"github.com/skids-health/skids-sync/internal/adapter"
	"github.com/skids-health/skids-sync/internal/client"
	"github.com/skids-health/skids-sync/internal/config"
	"github.com/skids-health/skids-sync/internal/crypto"
	"github.com/skids-health/skids-sync/internal/logger"
	"github.com/skids-health/skids-sync/internal/service"
	"github.com/skids-health/skids-sync/internal/store"
	"github.com/skids-health/skids-sync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewAgentLogger("skids-sync-agent")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	serverAdapter := adapter.NewHTTPServerAdapter(cfg.Adapter, log)

	var cipher crypto.PayloadCipher
	if cfg.Crypto.CachePassphrase != "" {
		if cipher, err = crypto.NewPayloadCipher(cfg.Crypto.CachePassphrase); err != nil {
			log.Fatal().Err(err).Msg("create cache cipher")
		}
	}

	services := service.NewClientServices(storages, serverAdapter, cfg.Sync, cipher, log)

	app, err := client.NewApp(services, workers.NewWorkers(services, cfg.Sync, log), log)
	if err != nil {
		log.Fatal().Err(err).Msg("init sync agent error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("sync agent run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
