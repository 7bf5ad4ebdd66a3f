// Package server exposes a running game to spectators: a WebSocket event
// stream fed by the game's bus, plus JSON state and health endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/emberforge/ember-server-go/internal/config"
	"github.com/emberforge/ember-server-go/internal/game/state"
)

const (
	writeTimeout    = 10 * time.Second
	eventBufferSize = 256
)

// Server streams bus events to WebSocket clients. A client that cannot
// keep up has events dropped rather than stalling the game goroutine.
type Server struct {
	cfg      config.ServerConfig
	bus      *state.Bus
	snapshot func() state.Snapshot
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// New builds a server over a game's bus. The snapshot function is called
// per /state request; it must be safe to call from the HTTP goroutine.
func New(cfg config.ServerConfig, bus *state.Bus, snapshot func() state.Snapshot, logger *zap.Logger) *Server {
	return &Server{
		cfg:      cfg,
		bus:      bus,
		snapshot: snapshot,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/state", s.handleState)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Address, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("spectator server listening", zap.String("address", s.cfg.Address))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.snapshot()); err != nil {
		s.logger.Error("encode state snapshot", zap.Error(err))
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	s.logger.Info("spectator connected", zap.String("remote", conn.RemoteAddr().String()))

	events := make(chan state.Event, eventBufferSize)
	subID := s.bus.Subscribe(func(ev state.Event) {
		select {
		case events <- ev:
		default:
			// Slow consumer; drop instead of blocking the game.
		}
	})
	defer s.bus.Unsubscribe(subID)

	// Reads are discarded; a read error means the client went away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(ev); err != nil {
				s.logger.Info("spectator disconnected", zap.Error(err))
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}
