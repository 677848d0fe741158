package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-rest-pipeline/internal/audit"
	"github.com/MKhiriev/go-rest-pipeline/internal/auth"
	"github.com/MKhiriev/go-rest-pipeline/internal/config"
	"github.com/MKhiriev/go-rest-pipeline/internal/crypto"
	"github.com/MKhiriev/go-rest-pipeline/internal/emitter"
	"github.com/MKhiriev/go-rest-pipeline/internal/handler/api"
	handlerhttp "github.com/MKhiriev/go-rest-pipeline/internal/handler/http"
	"github.com/MKhiriev/go-rest-pipeline/internal/logger"
	"github.com/MKhiriev/go-rest-pipeline/internal/pipeline"
	"github.com/MKhiriev/go-rest-pipeline/internal/request"
	"github.com/MKhiriev/go-rest-pipeline/internal/router"
	"github.com/MKhiriev/go-rest-pipeline/internal/server"
	"github.com/MKhiriev/go-rest-pipeline/internal/session"
	"github.com/MKhiriev/go-rest-pipeline/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-rest-pipeline")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("server", cfg.Server).Str("route_mode", cfg.Pipeline.RouteMode).Int("routes", len(cfg.Pipeline.Routes)).Msg("received configs")

	ctx := context.Background()

	sink, resources, err := audit.Open(ctx, cfg.Audit, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening audit sinks")
	}
	defer resources.Close()

	registry, err := auth.LoadRegistry(cfg.Auth, crypto.NewSealer())
	if err != nil {
		log.Fatal().Err(err).Msg("error loading key registry")
	}
	log.Info().Int("keys", registry.Len()).Msg("key registry loaded")

	sessions := session.NewManager(cfg.Auth)
	resolver := auth.NewResolver(registry, sessions, sink)

	version := buildVersion
	if cfg.App.Version != "" {
		version = cfg.App.Version
	}
	handlers := api.NewHandlers(models.NewAppBuildInfo(version, buildDate, buildCommit), sessions)

	table, err := api.BuildTable(cfg.Pipeline.Routes, handlers.ByName(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error building route table")
	}

	mode := router.Mode(cfg.Pipeline.RouteMode)
	em := emitter.New(cfg.Pipeline.DefaultProtocol, sink)
	p := pipeline.New(
		request.NewParser(cfg.Server.MaxBodyBytes, cfg.Pipeline.DefaultProtocol),
		router.New(table, resolver, mode),
		em,
	)

	probes := map[string]handlerhttp.Probe{
		"audit_db": resources.Ping,
		"registry": func(context.Context) error {
			if registry.Len() == 0 {
				return auth.ErrRegistryUnavailable
			}
			return nil
		},
	}
	h := handlerhttp.NewHandler(p, em, mode, probes, log)

	srv, err := server.NewServer(h.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
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
