package server

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/crapsforbots/internal/craps"
	"github.com/lox/crapsforbots/internal/dice"
	"github.com/lox/crapsforbots/internal/sessionid"
)

// Options configures the sessions a Server hands out
type Options struct {
	Table       craps.Config
	Bankroll    int
	MaxRolls    int           // 0 means unlimited
	IdleTimeout time.Duration // Close sessions that send nothing for this long
	Seed        int64         // 0 seeds from the clock
	FixedDice   bool          // Accept client supplied dice on roll
	Clock       quartz.Clock
}

// DefaultOptions returns options for a standard table
func DefaultOptions() Options {
	return Options{
		Table:       craps.DefaultConfig(),
		Bankroll:    1000,
		IdleTimeout: 5 * time.Minute,
	}
}

// Server represents the WebSocket server. Every connection plays its own
// table.
type Server struct {
	addr        string
	opts        Options
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	ids         *sessionid.Generator

	seedMu sync.Mutex
	seeds  *rand.Rand
}

// NewServer creates a new WebSocket server
func NewServer(addr string, opts Options, logger *log.Logger) (*Server, error) {
	if err := opts.Table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid table config: %w", err)
	}
	if opts.Bankroll <= 0 {
		return nil, fmt.Errorf("bankroll must be positive: %d", opts.Bankroll)
	}
	if opts.IdleTimeout <= 0 {
		return nil, fmt.Errorf("idle timeout must be positive: %s", opts.IdleTimeout)
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = opts.Clock.Now().UnixNano()
	}

	ctx, cancel := context.WithCancel(context.Background())
	seeds := dice.NewRand(seed)
	return &Server{
		addr: addr,
		opts: opts,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Bots connect from anywhere
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
		ids:         sessionid.NewGenerator(opts.Clock, dice.NewRand(seed+1)),
		seeds:       seeds,
	}, nil
}

// Handler returns the HTTP handler serving /ws and /health
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting WebSocket server", "addr", s.addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down WebSocket server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := httpServer.Shutdown(shutdownCtx)
	_ = s.Stop()
	return err
}

// Stop closes every open connection
func (s *Server) Stop() error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close() // Ignore close errors during shutdown
	}
	s.mu.Unlock()

	return nil
}

// Connections returns the number of open sessions
func (s *Server) Connections() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

func (s *Server) nextSeed() int64 {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	return s.seeds.Int64()
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.ctx.Err() != nil {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client, err := newConnection(s.ids.Generate(), conn, s.nextSeed(), s.opts, s.logger)
	if err != nil {
		s.logger.Error("Failed to create session", "error", err)
		_ = conn.Close()
		return
	}

	s.mu.Lock()
	s.connections[client] = true
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "session", client.id, "total", total)

	client.Start()

	go func() {
		<-client.Done()
		s.mu.Lock()
		delete(s.connections, client)
		total := len(s.connections)
		s.mu.Unlock()
		s.logger.Info("Client disconnected", "session", client.id, "total", total)
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}
