package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"sarhisob/internal/cache"
	"sarhisob/internal/core"
	"sarhisob/internal/services"
	appweb "sarhisob/web"
)

// Ledger is the slice of the service layer the handlers need.
type Ledger interface {
	AddRecord(ctx context.Context, r core.Record) (string, error)
	DeleteRecord(ctx context.Context, id string) error
	Records(ctx context.Context) ([]core.Record, error)
	Settings(ctx context.Context) (core.Settings, error)
	UpdateSettings(ctx context.Context, s core.Settings) error
	ClearAll(ctx context.Context) error
	Overview(ctx context.Context, now time.Time) (services.Overview, error)
}

// Advisor produces the narrative advice text. Implementations never fail;
// they degrade to a fallback string.
type Advisor interface {
	Advise(ctx context.Context, records []core.Record, settings core.Settings) string
}

type Server struct {
	http.Server
	templates   *template.Template
	ledger      Ledger
	advisor     Advisor
	rateLimiter *rateLimiter

	// Cached Overview; any mutation clears it.
	overviewCache *cache.LRUCache[services.Overview]

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, ledger Ledger, advisor Advisor) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		ledger:        ledger,
		advisor:       advisor,
		rateLimiter:   newRateLimiter(),
		overviewCache: cache.NewLRUCache[services.Overview](16, 5*time.Minute),
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/records", s.withSecurityHeaders(s.handleCreateRecord))
	mux.HandleFunc("/records/", s.withSecurityHeaders(s.handleDeleteRecord))
	mux.HandleFunc("/settings", s.withSecurityHeaders(s.handleSaveSettings))
	mux.HandleFunc("/settings/clear", s.withSecurityHeaders(s.handleClearAll))
	mux.HandleFunc("/advice", s.withSecurityHeaders(s.handleAdvice))
	// UI partials
	mux.HandleFunc("/ui/overview", s.withSecurityHeaders(s.handleOverviewPartial))
	mux.HandleFunc("/ui/history", s.withSecurityHeaders(s.handleHistoryPartial))
	mux.HandleFunc("/ui/analytics", s.withSecurityHeaders(s.handleAnalyticsPartial))
	mux.HandleFunc("/ui/settings", s.withSecurityHeaders(s.handleSettingsPartial))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request logging to responses
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Extract client IP (considering proxies)
		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		// Rate limit mutations only
		if isMutation(r.Method) && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com 'unsafe-eval'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

func isMutation(method string) bool {
	return method == http.MethodPost || method == http.MethodDelete || method == http.MethodPut
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.ledger.Settings(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Readiness check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("store unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// getOverview returns the cached overview for today, recomputing on miss.
func (s *Server) getOverview(ctx context.Context) (services.Overview, error) {
	now := time.Now()
	key := now.Format("2006-01-02")

	if ov, found := s.overviewCache.Get(key); found {
		slog.DebugContext(ctx, "Overview cache hit", "key", key)
		return ov, nil
	}

	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()
	ov, err := s.ledger.Overview(cctx, now)
	if err != nil {
		return services.Overview{}, fmt.Errorf("compute overview: %w", err)
	}

	s.overviewCache.Set(key, ov)
	return ov, nil
}

// invalidateOverview drops all cached views after a mutation.
func (s *Server) invalidateOverview() {
	s.overviewCache.Clear()
}
