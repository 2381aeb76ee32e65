package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/go-kafka-rest/internal/clock"
	"github.com/MKhiriev/go-kafka-rest/internal/config"
	"github.com/MKhiriev/go-kafka-rest/internal/kafka"
	"github.com/MKhiriev/go-kafka-rest/internal/logger"
	"github.com/MKhiriev/go-kafka-rest/internal/schemaregistry"
	"github.com/MKhiriev/go-kafka-rest/internal/server"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	bootstrap, err := config.LoadBootstrap(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if bootstrap.PrintConfigDoc {
		fmt.Print(config.DocTable(config.ProxySchema()))
		return
	}

	printBuildInfo()

	log := logger.NewLogger("kafka-rest", bootstrap.LogLevel)

	props := map[string]string{}
	if bootstrap.PropertiesFile != "" {
		props, err = config.LoadProperties(bootstrap.PropertiesFile)
		if err != nil {
			log.Fatal().Err(err).Msg("error loading properties file")
		}
	}

	props, err = config.MergeProperties(props, config.EnvProperties(os.Environ()))
	if err != nil {
		log.Fatal().Err(err).Msg("error merging property sources")
	}

	cfg, err := config.NewProxyConfig(props, clock.System{}, kafka.Settings)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	log.Debug().Any("properties", cfg.OriginalProperties()).Msg("resolved configuration")

	source := kafka.NewPooledSource(kafka.UnavailableFactory(), cfg)
	defer source.Close()

	evictCtx, stopEviction := context.WithCancel(context.Background())
	defer stopEviction()
	go source.RunEviction(evictCtx)

	registry := schemaregistry.NewClient(
		cfg.SchemaRegistryURL(),
		time.Duration(cfg.RequestTimeoutMs())*time.Millisecond,
	)

	if err := server.New(cfg, log, source, registry).Run(); err != nil {
		log.Fatal().Err(err).Msg("server error")
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
