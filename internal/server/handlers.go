package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-kafka-rest/internal/kafka"
	"github.com/MKhiriev/go-kafka-rest/internal/logger"
	"github.com/MKhiriev/go-kafka-rest/internal/pool"
)

type apiError struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
}

// Routes builds the router: recovery, request identification, optional
// request logging, and a per-request deadline from the configured
// request timeout.
func (s *Server) Routes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.withRequestID)
	if s.cfg.RequestLoggingEnabled() {
		router.Use(s.withLogging)
	}
	router.Use(middleware.Timeout(time.Duration(s.cfg.RequestTimeoutMs()) * time.Millisecond))

	router.Get("/healthz", s.healthz)
	router.Get("/subjects", s.subjects)
	router.Get("/topics/{topic}/partitions/{partition}/messages", s.consume)

	return router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) subjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := s.registry.Subjects(r.Context())
	if err != nil {
		logger.FromRequest(r).Error().Err(err).Msg("schema registry request failed")
		writeError(w, http.StatusBadGateway, "schema registry unavailable")
		return
	}
	if subjects == nil {
		subjects = []string{}
	}

	writeJSON(w, http.StatusOK, subjects)
}

func (s *Server) consume(w http.ResponseWriter, r *http.Request) {
	topic := chi.URLParam(r, "topic")

	partition, err := strconv.ParseInt(chi.URLParam(r, "partition"), 10, 32)
	if err != nil || partition < 0 {
		writeError(w, http.StatusNotFound, "partition not found")
		return
	}

	offset, err := strconv.ParseInt(r.URL.Query().Get("offset"), 10, 64)
	if err != nil || offset < 0 {
		writeError(w, http.StatusBadRequest, "offset must be a non-negative integer")
		return
	}

	maxBytes := s.cfg.RequestMaxBytes()
	if raw := r.URL.Query().Get("max_bytes"); raw != "" {
		requested, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || requested <= 0 {
			writeError(w, http.StatusBadRequest, "max_bytes must be a positive integer")
			return
		}
		if requested < maxBytes {
			maxBytes = requested
		}
	}

	messages, err := s.source.Fetch(r.Context(), topic, int32(partition), offset, maxBytes)
	if err != nil {
		logger.FromRequest(r).Error().Err(err).
			Str("topic", topic).
			Int64("partition", partition).
			Msg("fetch failed")
		writeError(w, fetchErrorStatus(err), err.Error())
		return
	}
	if messages == nil {
		messages = []kafka.Message{}
	}

	writeJSON(w, http.StatusOK, messages)
}

func fetchErrorStatus(err error) int {
	switch {
	case errors.Is(err, kafka.ErrConsumerUnavailable):
		return http.StatusNotImplemented
	case errors.Is(err, pool.ErrAcquireTimeout):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiError{ErrorCode: status, Message: message})
}
