package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/lox/blackjack-tournament/internal/scoring"
)

// RankingSource reports the current standings
type RankingSource interface {
	Ranking() []scoring.Standing
}

// Server serves the spectator API
type Server struct {
	addr     string
	hub      *Hub
	ranking  RankingSource
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a spectator server on addr
func NewServer(addr string, hub *Hub, ranking RankingSource, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Server{
		addr:    addr,
		hub:     hub,
		ranking: ranking,
		logger:  logger.WithPrefix("spectate"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Spectating is read-only
			},
		},
	}
}

// Routes returns the HTTP handler
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NoCache)
		r.Get("/ranking", s.handleRanking)
		r.Get("/match", s.handleMatch)
	})
	r.Get("/ws", s.handleWebSocket)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully and
// disconnects every spectator.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("Spectator server listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("spectator server shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}

func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	var ranking []scoring.Standing
	if s.ranking != nil {
		ranking = s.ranking.Ranking()
	}
	if ranking == nil {
		ranking = []scoring.Standing{}
	}
	writeJSON(w, http.StatusOK, ranking)
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	snap := s.hub.Latest()
	if snap == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no match in progress"})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	c := newClient(conn, s.logger)
	// The greeting is queued before registration so it is always the
	// first frame a spectator reads.
	_ = c.send(Frame{Type: FrameSnapshot, Time: time.Now(), Match: s.hub.Latest()})
	s.hub.register(c)
	c.start()

	go func() {
		<-c.Done()
		s.hub.unregister(c)
	}()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
