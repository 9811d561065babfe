// Package api serves the journal and its statistics over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/internal/analytics"
	"github.com/rustyeddy/tradejournal/internal/logging"
	"github.com/rustyeddy/tradejournal/internal/tracing"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/stats"
	"github.com/rustyeddy/tradejournal/store"
)

// maxBodyBytes caps request bodies for trade and review writes.
const maxBodyBytes = 1 << 20

var dateRegexp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type Server struct {
	svc        *analytics.Service
	logger     *zap.Logger
	apiKey     string
	handler    http.Handler
	httpServer *http.Server
	now        func() time.Time
}

// NewServer wires the routes for svc. The returned server is not listening
// until Start is called.
func NewServer(svc *analytics.Service, cfg config.ServerConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		svc:    svc,
		logger: logger.Named("api"),
		apiKey: cfg.APIKey,
		now:    time.Now,
	}

	mux := http.NewServeMux()

	// Stats routes
	mux.HandleFunc("GET /api/stats/overview", s.handleOverview)
	mux.HandleFunc("GET /api/stats/equity-curve", s.handleEquityCurve)
	mux.HandleFunc("GET /api/stats/drawdown", s.handleDrawdown)
	mux.HandleFunc("GET /api/stats/by-setup", s.groupHandler(stats.BySetup))
	mux.HandleFunc("GET /api/stats/by-session", s.groupHandler(stats.BySession))
	mux.HandleFunc("GET /api/stats/by-timeframe", s.groupHandler(stats.ByTimeframe))
	mux.HandleFunc("GET /api/stats/by-grade", s.groupHandler(stats.ByGrade))
	mux.HandleFunc("GET /api/stats/by/{key}", s.handleGroupedBy)
	mux.HandleFunc("GET /api/stats/monthly-pnl", s.handleMonthly)
	mux.HandleFunc("GET /api/stats/mistakes", s.tagHandler("mistakes"))
	mux.HandleFunc("GET /api/stats/tags/{field}", s.handleTags)
	mux.HandleFunc("GET /api/stats/review", s.handleReview)

	// Trade routes
	mux.HandleFunc("GET /api/trades", s.handleListTrades)
	mux.HandleFunc("POST /api/trades", s.handleAddTrade)
	mux.HandleFunc("GET /api/trades/{id}", s.handleGetTrade)
	mux.HandleFunc("PATCH /api/trades/{id}", s.handleReviewTrade)
	mux.HandleFunc("DELETE /api/trades/{id}", s.handleDeleteTrade)
	mux.HandleFunc("POST /api/trades/{id}/exit", s.handleCloseTrade)

	// Review note routes
	mux.HandleFunc("GET /api/reviews", s.handleGetReviewNote)
	mux.HandleFunc("POST /api/reviews", s.handleSaveReviewNote)

	// Health check (no auth required)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.handler = s.traceMiddleware(s.authMiddleware(corsMiddleware(mux, cfg.CORSOrigin)))
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr is the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start listens until Shutdown is called. It returns http.ErrServerClosed
// after a clean shutdown.
func (s *Server) Start() error {
	s.logger.Info("REST API server started",
		zap.String("addr", s.httpServer.Addr),
		zap.Bool("auth", s.apiKey != ""))
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// --- middleware ---

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" || r.URL.Path == "/health" || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		auth := r.Header.Get("Authorization")
		if auth == "" {
			writeError(w, http.StatusUnauthorized, "missing Authorization header")
			return
		}

		token := strings.TrimPrefix(auth, "Bearer ")
		if token == auth || token != s.apiKey {
			writeError(w, http.StatusUnauthorized, "invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(next http.Handler, allowOrigin string) http.Handler {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracing.Start(r.Context(), r.Method+" "+r.URL.Path,
			attribute.String("http.method", r.Method),
			attribute.String("http.target", r.URL.Path),
		)
		defer span.End()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(ctx))

		span.SetAttributes(attribute.Int("http.status_code", rec.status))
		if rec.status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(rec.status))
		}
		logging.WithTrace(ctx, s.logger).Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)))
	})
}

// --- validation helpers ---

func validateDate(date string) bool {
	if !dateRegexp.MatchString(date) {
		return false
	}
	_, err := time.Parse(journal.DateLayout, date)
	return err == nil
}

// parseFilter reads the trade filter from the query string. A "range"
// preset (all, 30d, 6m, ytd) sets both bounds; explicit from/to win over it.
func (s *Server) parseFilter(r *http.Request) (store.Filter, error) {
	q := r.URL.Query()
	f := store.Filter{
		Symbol:    q.Get("symbol"),
		Setup:     q.Get("setup"),
		Session:   q.Get("session"),
		Timeframe: q.Get("timeframe"),
	}
	if preset := q.Get("range"); preset != "" {
		rg, err := journal.PresetRange(preset, s.now())
		if err != nil {
			return f, err
		}
		f = f.WithRange(rg)
	}
	if v := q.Get("from"); v != "" {
		f.From = v
	}
	if v := q.Get("to"); v != "" {
		f.To = v
	}
	for _, d := range []string{f.From, f.To} {
		if d != "" && !validateDate(d) {
			return f, errors.New("invalid date format, expected YYYY-MM-DD")
		}
	}
	return f, nil
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid trade id")
	}
	return id, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}

// --- response helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// fail maps service errors onto status codes. Unexpected errors are logged
// and hidden from the client.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, what string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, analytics.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logging.WithTrace(r.Context(), s.logger).Error(what, zap.Error(err))
		writeError(w, http.StatusInternalServerError, what)
	}
}
