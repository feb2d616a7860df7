// Package server exposes attendance queries over HTTP as JSON.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/ukaji3/attendsheet-go/pkg/attendsheet"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/report"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Server answers attendance queries for one Table.
type Server struct {
	table   *attendsheet.Table
	reports *report.Service
	logger  *zap.Logger
	clock   func() time.Time

	readTimeout     time.Duration
	shutdownTimeout time.Duration
	maxBodyBytes    int64

	handler   http.Handler
	mu        sync.RWMutex
	listener  net.Listener
	startTime time.Time
}

// Option customizes server construction.
type Option func(*Server)

// WithLogger overrides the default no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock allows tests to control timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Server) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithTimeouts sets the request read timeout and the graceful shutdown budget.
func WithTimeouts(read, shutdown time.Duration) Option {
	return func(s *Server) {
		if read > 0 {
			s.readTimeout = read
		}
		if shutdown > 0 {
			s.shutdownTimeout = shutdown
		}
	}
}

// New prepares a server over table and reports.
func New(table *attendsheet.Table, reports *report.Service, opts ...Option) *Server {
	s := &Server{
		table:           table,
		reports:         reports,
		logger:          zap.NewNop(),
		clock:           func() time.Time { return time.Now().UTC() },
		readTimeout:     10 * time.Second,
		shutdownTimeout: 5 * time.Second,
		maxBodyBytes:    1 << 10,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /weeks", s.handleWeeks)
	mux.HandleFunc("GET /weeks/month", s.handleMonthWeeks)
	mux.HandleFunc("GET /weeks/current", s.handleCurrentWeek)
	mux.HandleFunc("GET /people/{id}", s.handlePerson)
	mux.HandleFunc("GET /people/{id}/days", s.handleDays)
	mux.HandleFunc("GET /people/{id}/salary", s.handleSalary)
	mux.HandleFunc("PUT /people/{id}/selection", s.handleSelection)
	mux.HandleFunc("POST /reload", s.handleReload)
	s.handler = mux
	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler { return s.handler }

// Serve listens on addr and serves until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:     s.handler,
		ReadTimeout: s.readTimeout,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	s.mu.Lock()
	s.listener = listener
	s.startTime = s.clock()
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.listener = nil
		s.mu.Unlock()
	}()

	s.logger.Info("listening", zap.String("addr", listener.Addr().String()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Addr returns the bound TCP address while serving.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) uptimeSeconds() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.startTime.IsZero() {
		return 0
	}
	return int64(s.clock().Sub(s.startTime).Seconds())
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeError maps domain errors onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, attendsheet.ErrNotLoaded):
		status, code = http.StatusServiceUnavailable, "not_loaded"
	case errors.Is(err, attendsheet.ErrWeekOutOfRange):
		status, code = http.StatusBadRequest, "week_out_of_range"
	case errors.Is(err, attendsheet.ErrIdentifierNotFound):
		status, code = http.StatusNotFound, "identifier_not_found"
	case errors.Is(err, attendsheet.ErrUndetermined):
		status, code = http.StatusNotFound, "undetermined"
	case errors.Is(err, attendsheet.ErrSourceUnavailable),
		errors.Is(err, attendsheet.ErrEmptySheet),
		errors.Is(err, attendsheet.ErrHeaderNotFound):
		status, code = http.StatusBadGateway, "load_failed"
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg, Code: "bad_request"})
}

// userID parses the {id} path segment.
func userID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid identifier %q", r.PathValue("id"))
	}
	return id, nil
}

// weekParam parses the optional ?week= global week number; 0 when absent.
func weekParam(r *http.Request) (int, error) {
	v := r.URL.Query().Get("week")
	if v == "" {
		return 0, nil
	}
	week, err := strconv.Atoi(v)
	if err != nil || week < 1 {
		return 0, fmt.Errorf("invalid week %q", v)
	}
	return week, nil
}
