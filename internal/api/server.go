package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/rs/cors"

	"github.com/dreamware/bookshelf/internal/ident"
	"github.com/dreamware/bookshelf/internal/storage"
)

// Server serves the books API over a Store.
type Server struct {
	store  storage.Store
	logger *slog.Logger
	timer  *Timer
	newID  func() string
}

// Option customises a Server.
type Option func(*Server)

// WithIDGenerator replaces ident.New as the source of record ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *Server) { s.newID = gen }
}

// WithTimer replaces the request timer.
func WithTimer(t *Timer) Option {
	return func(s *Server) { s.timer = t }
}

// New returns a server backed by store. A nil logger discards logs.
func New(store storage.Store, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		store:  store,
		logger: logger,
		timer:  NewTimer(),
		newID:  ident.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler, wrapped in a CORS layer that allows
// any origin.
func (s *Server) Handler() http.Handler {
	rt := NewRouter()
	rt.Use(LogRequests(s.logger, s.timer))
	rt.UseParam("id", ValidateParam("id", ident.IsValid))

	rt.Handle("GET /books", s.handleList)
	rt.Handle("POST /books", s.handleCreate)
	rt.Handle("PUT /books/{id}", s.handleReplace)
	rt.Handle("DELETE /books/{id}", s.handleDelete)
	rt.Handle("GET /health", s.handleHealth)

	// Anything else answers JSON; other methods on /books/{id} still get the id check.
	rt.Handle("/books/{id}", s.handleNotFound)
	rt.Handle("/", s.handleNotFound)

	return cors.AllowAll().Handler(rt)
}
