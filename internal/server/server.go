package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/drewdunne/nlibot/internal/config"
	"github.com/drewdunne/nlibot/internal/event"
	xlog "github.com/drewdunne/nlibot/internal/log"
	"github.com/drewdunne/nlibot/internal/nli"
	"github.com/drewdunne/nlibot/internal/webhook"
)

// maxInterpretBody bounds the /v1/interpret request body.
const maxInterpretBody = 64 << 10

// HealthResponse represents the health check response structure.
type HealthResponse struct {
	Status string                 `json:"status"`
	Checks map[string]interface{} `json:"checks"`
}

// InterpretRequest is the body of POST /v1/interpret.
type InterpretRequest struct {
	Text string `json:"text"`
}

// ErrorResponse is returned by the API on failure.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// Server is the HTTP server for nlibot.
type Server struct {
	cfg         *config.Config
	mux         *chi.Mux
	interpreter nli.Interpreter
	eventRouter *event.Router
	logger      zerolog.Logger

	mu         sync.Mutex // guards httpServer and listener
	httpServer *http.Server
	listener   net.Listener
	ready      chan struct{} // closed once the listener accepts connections
}

// New creates a new Server. interpreter and router may be nil; the routes that
// need them are then not mounted.
func New(cfg *config.Config, interpreter nli.Interpreter, router *event.Router) *Server {
	s := &Server{
		cfg:         cfg,
		mux:         chi.NewRouter(),
		ready:       make(chan struct{}),
		interpreter: interpreter,
		eventRouter: router,
		logger:      xlog.WithComponent("server"),
	}
	s.routes()
	return s
}

// Ready returns a channel that is closed when the server is ready to accept connections.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// routes sets up the HTTP routes.
func (s *Server) routes() {
	s.mux.Use(middleware.Recoverer)
	s.mux.Use(middleware.RequestID)

	s.mux.Get("/health", s.handleHealth)
	s.mux.Handle("/metrics", promhttp.Handler())

	if s.cfg.Providers.GitHub.WebhookSecret != "" {
		s.mux.Method(http.MethodPost, "/webhook/github", webhook.NewGitHubHandler(
			s.cfg.Providers.GitHub.WebhookSecret,
			s.handleGitHubEvent,
		))
	}

	if s.cfg.Providers.GitLab.WebhookSecret != "" {
		s.mux.Method(http.MethodPost, "/webhook/gitlab", webhook.NewGitLabHandler(
			s.cfg.Providers.GitLab.WebhookSecret,
			s.handleGitLabEvent,
		))
	}

	if s.interpreter != nil {
		s.mux.Group(func(r chi.Router) {
			if limit := s.cfg.Bot.RateLimitPerMinute; limit > 0 {
				r.Use(httprate.Limit(limit, time.Minute,
					httprate.WithKeyFuncs(httprate.KeyByIP),
					httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
						writeJSON(w, http.StatusTooManyRequests, ErrorResponse{Error: "rate_limit_exceeded"})
					}),
				))
			}
			r.Post("/v1/interpret", s.handleInterpret)
		})
	}
}

// handleHealth responds with server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := map[string]interface{}{
		"interpreter": s.interpreter != nil,
		"webhooks":    s.eventRouter != nil,
	}

	status := "ok"
	if s.interpreter == nil {
		status = "degraded"
	}

	writeJSON(w, http.StatusOK, HealthResponse{Status: status, Checks: checks})
}

// handleInterpret interprets the posted text and returns the intent.
func (s *Server) handleInterpret(w http.ResponseWriter, r *http.Request) {
	var req InterpretRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxInterpretBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid_request", Detail: err.Error()})
		return
	}

	intent, err := s.interpreter.Interpret(r.Context(), req.Text)
	if err != nil {
		status, code := interpretErrorStatus(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("interpret failed")
		}
		writeJSON(w, status, ErrorResponse{Error: code, Detail: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, intent)
}

// interpretErrorStatus maps NLI failure kinds to HTTP statuses.
func interpretErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, nli.ErrStatus):
		return http.StatusUnprocessableEntity, "no_interpretation"
	case errors.Is(err, nli.ErrMalformedResponse):
		return http.StatusBadGateway, "malformed_upstream_response"
	case errors.Is(err, nli.ErrTransport):
		return http.StatusBadGateway, "upstream_unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// handleGitHubEvent processes a GitHub webhook event.
func (s *Server) handleGitHubEvent(ctx context.Context, ghEvent *webhook.GitHubEvent) error {
	if s.eventRouter == nil {
		return nil
	}
	evt, err := event.NormalizeGitHubEvent(ghEvent, s.cfg.Bot.Mention)
	s.route(ctx, evt, err)
	return nil
}

// handleGitLabEvent processes a GitLab webhook event.
func (s *Server) handleGitLabEvent(ctx context.Context, glEvent *webhook.GitLabEvent) error {
	if s.eventRouter == nil {
		return nil
	}
	evt, err := event.NormalizeGitLabEvent(glEvent, s.cfg.Bot.Mention)
	s.route(ctx, evt, err)
	return nil
}

// route hands a normalized event to the router. Failures are logged and never
// fail the webhook delivery, so providers do not disable the hook.
func (s *Server) route(ctx context.Context, evt *event.Event, normalizeErr error) {
	if errors.Is(normalizeErr, event.ErrIgnored) {
		s.logger.Debug().Err(normalizeErr).Msg("webhook ignored")
		return
	}
	if normalizeErr != nil {
		s.logger.Warn().Err(normalizeErr).Msg("failed to normalize webhook")
		return
	}

	if err := s.eventRouter.Route(ctx, evt); err != nil {
		s.logger.Error().Err(err).Str("key", evt.Key()).Msg("failed to route event")
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
