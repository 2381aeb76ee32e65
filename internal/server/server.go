// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server is the HTTP surface of the proxy: routing, request
// identification and logging, and graceful shutdown. All operational
// parameters come from the resolved proxy configuration.
package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-kafka-rest/internal/config"
	"github.com/MKhiriev/go-kafka-rest/internal/ids"
	"github.com/MKhiriev/go-kafka-rest/internal/kafka"
	"github.com/MKhiriev/go-kafka-rest/internal/logger"
)

// SchemaRegistry is the slice of the schema registry API the server
// exposes and the Avro decode path consumes.
type SchemaRegistry interface {
	Subjects(ctx context.Context) ([]string, error)
}

// Server serves the consumer REST API.
type Server struct {
	cfg      *config.ProxyConfig
	log      *logger.Logger
	source   kafka.MessageSource
	registry SchemaRegistry
	gen      *ids.Generator
	http     *http.Server
}

// New wires a Server from the resolved configuration. source supplies
// the records returned by the consume endpoint; registry backs the
// schema subject listing.
func New(cfg *config.ProxyConfig, log *logger.Logger, source kafka.MessageSource, registry SchemaRegistry) *Server {
	s := &Server{
		cfg:      cfg,
		log:      log,
		source:   source,
		registry: registry,
		gen:      ids.NewGenerator(cfg.ID()),
	}
	s.http = &http.Server{
		Addr:    cfg.Listener(),
		Handler: s.Routes(),
	}

	return s
}

// Run starts the server and blocks until SIGTERM, SIGINT, or SIGQUIT,
// then shuts down gracefully within the configured grace period.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.http.Addr).Msg("launching HTTP server")
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	grace := time.Duration(s.cfg.ShutdownGraceMs()) * time.Millisecond
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info().Msg("server shut down gracefully")

	return nil
}
