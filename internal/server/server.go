package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/guerrinflorian/lexiflood-backend/internal"
	"github.com/guerrinflorian/lexiflood-backend/internal/websocket"
)

// WordLookup answers dictionary checks.
type WordLookup interface {
	Exists(word string) bool
}

// ResultsReader exposes the persisted games.
type ResultsReader interface {
	RecentResults(ctx context.Context, limit int) ([]internal.GameResult, error)
	Health(ctx context.Context) map[string]string
}

type Server struct {
	port      int
	origins   []string
	gateway   *websocket.Gateway
	commander websocket.Commander
	words     WordLookup
	results   ResultsReader
}

type Option func(*Server)

// WithResults enables the results endpoints and database health.
func WithResults(results ResultsReader) Option {
	return func(s *Server) { s.results = results }
}

func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) { s.origins = origins }
}

func New(port int, gateway *websocket.Gateway, commander websocket.Commander, words WordLookup, opts ...Option) *Server {
	s := &Server{
		port:      port,
		origins:   []string{"*"},
		gateway:   gateway,
		commander: commander,
		words:     words,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HTTPServer returns the configured http.Server for the routes.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.RegisterRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
	}
}
