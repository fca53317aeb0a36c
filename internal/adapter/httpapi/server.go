// Package httpapi exposes the task runner over HTTP for local runs and
// function-URL style deployments.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"

	"retrieval-agent/internal/application/port/input"
	"retrieval-agent/internal/application/port/output"
)

const maxPayloadBytes = 1 << 20

type Server struct {
	runner input.TaskRunner
	logger output.LoggerPort
}

func NewServer(runner input.TaskRunner, logger output.LoggerPort) *Server {
	return &Server{
		runner: runner,
		logger: logger,
	}
}

func (s *Server) Routes() http.Handler {
	accessLog := httplog.NewLogger("retrieval-agent", httplog.Options{
		JSON:    true,
		Concise: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(accessLog))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/invoke", s.handleInvoke)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"message": "payload too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "cannot read payload"})
		return
	}

	resp, err := s.runner.Run(r.Context(), json.RawMessage(body))
	status := resp.StatusCode
	if err != nil {
		s.logger.Error("Task runner returned error", "error", err)
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(resp.Body))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
