// Package httpapi is the inbound transport for the honeypot: a chi HTTP
// server that normalizes webhook payloads and hands them to the core
// service.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/mikey/scam-honeypot/internal/core"
)

// Server implements core.MessageFilter over HTTP.
type Server struct {
	service    *core.HoneypotService
	logger     *zap.Logger
	listenAddr string
	apiKey     string
	httpServer *http.Server
}

// NewServer creates a new HTTP server adapter.
func NewServer(
	service *core.HoneypotService,
	logger *zap.Logger,
	listenAddr string,
	apiKey string,
) *Server {
	return &Server{
		service:    service,
		logger:     logger,
		listenAddr: listenAddr,
		apiKey:     apiKey,
	}
}

// routes builds the chi router.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "x-api-key"},
	}))

	r.HandleFunc("/", s.handleHealth)

	r.Group(func(priv chi.Router) {
		priv.Use(s.apiKeyAuth)
		priv.HandleFunc("/api/honeypot", s.handleHoneypot)
	})

	return r
}

// Start starts the HTTP server. Implements core.MessageFilter.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.listenAddr,
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.logger.Info("Honeypot HTTP server starting", zap.String("address", s.listenAddr))

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully stops the HTTP server. Implements core.MessageFilter.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// requestLogger logs each request with zap.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("Handled request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)))
	})
}

// apiKeyAuth rejects requests without the configured x-api-key header.
func (s *Server) apiKeyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		if s.apiKey != "" && r.Header.Get("x-api-key") != s.apiKey {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"status":  "error",
				"message": "Invalid API key",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
