package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hallyupress/newsdesk/internal/logging"
	"github.com/hallyupress/newsdesk/internal/reorder"
	"github.com/hallyupress/newsdesk/internal/storage/sqlite"
)

const shutdownTimeout = 30 * time.Second

// Store is what the server needs from persistence.
type Store interface {
	ListItems(ctx context.Context, resource string) ([]reorder.Item, error)
	GetItem(ctx context.Context, resource, id string) (reorder.Item, error)
	UpdateItem(ctx context.Context, resource string, it reorder.Item) error
}

var _ Store = (*sqlite.SQLiteStorage)(nil)

// Server is the local CRUD API.
type Server struct {
	store   Store
	address string
	server  *http.Server
	logger  logging.Logger
}

// NewServer returns a server that will listen on address.
func NewServer(store Store, address string, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.GetGlobal()
	}
	return &Server{
		store:   store,
		address: address,
		logger:  logger.With("component", "server"),
	}
}

// itemPatch is the body of PUT /{resource}/{id}. Absent fields keep their
// stored value.
type itemPatch struct {
	ID           *string    `json:"id"`
	Category     *string    `json:"category"`
	Rank         *int       `json:"rank"`
	PreviousRank *int       `json:"previousRank"`
	Title        *string    `json:"title"`
	UpdatedAt    *time.Time `json:"updatedAt"`
}

func (p itemPatch) apply(it reorder.Item) reorder.Item {
	if p.Category != nil {
		it.Category = *p.Category
	}
	if p.Rank != nil {
		it.Rank = *p.Rank
	}
	if p.PreviousRank != nil {
		it.PreviousRank = *p.PreviousRank
	}
	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.UpdatedAt != nil {
		it.UpdatedAt = *p.UpdatedAt
	}
	return it
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte("ok"))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListItems(r.Context(), r.PathValue("resource"))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	it, err := s.store.GetItem(r.Context(), r.PathValue("resource"), r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	resource, id := r.PathValue("resource"), r.PathValue("id")

	var patch itemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	if patch.ID != nil && *patch.ID != id {
		http.Error(w, "id in body does not match path", http.StatusBadRequest)
		return
	}

	current, err := s.store.GetItem(r.Context(), resource, id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	updated := patch.apply(current)
	if err := s.store.UpdateItem(r.Context(), resource, updated); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.logger.Info("item updated", "resource", resource, "id", id,
		"rank", updated.Rank, "previous_rank", updated.PreviousRank,
		"request_id", r.Header.Get(RequestIDHeader))
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, sqlite.ErrItemNotFound):
		http.Error(w, "item not found", http.StatusNotFound)
	case errors.Is(err, sqlite.ErrInvalidResource),
		errors.Is(err, sqlite.ErrInvalidRank),
		errors.Is(err, sqlite.ErrInvalidItemID):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		s.logger.Error("store error", "path", r.URL.Path, "error", err)
		http.Error(w, "storage failure", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withRequestID echoes or assigns X-Request-ID and logs each request.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path,
			"status", rec.status, "request_id", id, "duration_ms", time.Since(start).Milliseconds())
	})
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /{resource}", s.handleList)
	mux.HandleFunc("GET /{resource}/{id}", s.handleGet)
	mux.HandleFunc("PUT /{resource}/{id}", s.handleUpdate)
	return s.withRequestID(mux)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", s.address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "address", ln.Addr().String())
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
