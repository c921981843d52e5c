// Package server exposes sessions over WebSocket and a small status endpoint.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/Cyclone1070/jarvis/internal/config"
	"github.com/Cyclone1070/jarvis/internal/session"
	"github.com/Cyclone1070/jarvis/internal/telemetry"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Status is the body of GET /.
type Status struct {
	Status string `json:"status"`
	OS     string `json:"os"`
	Mode   string `json:"mode"`
}

// Server accepts WebSocket clients and runs one session per connection.
type Server struct {
	cfg        config.ServerConfig
	sessionCfg config.SessionConfig
	deps       session.Dependencies
	sampler    telemetry.Sampler
	platform   string
	validator  *TokenValidator
	upgrader   websocket.Upgrader
	logger     *zap.Logger

	sessions sync.WaitGroup
}

// New creates a Server. deps are shared by all sessions; each session gets
// its own controller and telemetry meter.
func New(cfg *config.Config, deps session.Dependencies, sampler telemetry.Sampler, platformID string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:        cfg.Server,
		sessionCfg: cfg.Session,
		deps:       deps,
		sampler:    sampler,
		platform:   platformID,
		validator:  NewTokenValidator(cfg.Server.AuthSecret),
		logger:     logger.Named("server"),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// Handler returns the HTTP routes. Sessions started through it stop when ctx is done.
func (s *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleStatus)
	mux.HandleFunc("GET /ws", func(w http.ResponseWriter, r *http.Request) {
		s.handleWS(ctx, w, r)
	})
	return mux
}

// ListenAndServe serves on the configured address until ctx is done, then
// shuts down and waits for every session to finish.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("listening", zap.String("addr", ln.Addr().String()), zap.Bool("auth", s.validator != nil))

	select {
	case err := <-errCh:
		s.sessions.Wait()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("shutdown incomplete", zap.Error(err))
	}
	s.sessions.Wait()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Status{Status: "active", OS: s.platform, Mode: "eco-silent"})
}

func (s *Server) handleWS(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if s.validator != nil {
		claims, err := s.validator.Authorize(r)
		if err != nil {
			s.logger.Warn("rejected connection", zap.String("remote", r.RemoteAddr), zap.Error(err))
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		s.logger.Info("operator authenticated", zap.String("subject", claims.Subject))
	}

	// Counted before the hijack so Shutdown cannot return ahead of it.
	s.sessions.Add(1)
	defer s.sessions.Done()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}

	ch := newWSChannel(conn, time.Duration(s.cfg.WriteTimeoutMs)*time.Millisecond)
	ctrl := session.NewController(s.deps, s.sessionCfg)
	sess := session.New(ctrl, telemetry.NewMeter(s.sampler), time.Duration(s.sessionCfg.HeartbeatMs)*time.Millisecond, s.logger)
	s.logger.Info("client connected", zap.String("remote", r.RemoteAddr), zap.String("session_id", sess.ID()))

	if err := sess.Run(ctx, ch); err != nil {
		ch.close(websocket.CloseGoingAway, "server shutting down")
		return
	}
	ch.close(websocket.CloseNormalClosure, "")
}

// checkOrigin accepts requests without an Origin header (non-browser
// clients) and origins on the allow list. "*" accepts any origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return slices.Contains(s.cfg.AllowedOrigins, "*") || slices.Contains(s.cfg.AllowedOrigins, origin)
}
