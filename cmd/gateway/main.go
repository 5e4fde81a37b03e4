package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/lms-gateway/internal/adapter"
	"github.com/MKhiriev/lms-gateway/internal/config"
	"github.com/MKhiriev/lms-gateway/internal/handler"
	"github.com/MKhiriev/lms-gateway/internal/logger"
	"github.com/MKhiriev/lms-gateway/internal/metrics"
	"github.com/MKhiriev/lms-gateway/internal/server"
	"github.com/MKhiriev/lms-gateway/internal/service"
	"github.com/MKhiriev/lms-gateway/internal/store"
	"github.com/MKhiriev/lms-gateway/internal/workers"
	"github.com/MKhiriev/lms-gateway/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := printBuildInfo()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("lms-gateway", "").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("lms-gateway", cfg.App.LogLevel)
	log.Info().
		Str("version", buildInfo.BuildVersion()).
		Str("commit", buildInfo.BuildCommit()).
		Msg("starting gateway")
	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("admin_address", cfg.Server.AdminAddress).
		Str("failure_mode", string(cfg.RateLimit.FailureMode)).
		Strs("public_paths", cfg.App.PublicPaths).
		Msg("received configs")

	ctx := context.Background()

	// failing closed without a store would reject every request
	storages, err := store.NewStorages(ctx, cfg.Storage.Redis, cfg.RateLimit.FailureMode == config.FailClosed, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	services := service.NewServices(storages, cfg)
	m := metrics.New()

	routes, err := cfg.Server.ParseRoutes()
	if err != nil {
		log.Fatal().Err(err).Msg("error parsing upstream routes")
	}
	upstream, err := adapter.NewUpstreamRouter(routes, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating upstream router")
	}

	handlers, err := handler.NewHandlers(services, upstream, m, storages.Counter, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	w := workers.NewWorkers(
		workers.NewStoreProbe(storages.Counter, cfg.Workers.StoreProbeInterval, m, log),
	)

	srv, err := server.NewServer(handlers, w, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() models.AppBuildInfo {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(info)
	return info
}
