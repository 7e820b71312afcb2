// Package server provides the HTTP REST API for the worksheet engine.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sleyter2616/SiteHustle-sub000/internal/config"
	"github.com/Sleyter2616/SiteHustle-sub000/internal/export"
	"github.com/Sleyter2616/SiteHustle-sub000/internal/server/ratelimit"
	"github.com/Sleyter2616/SiteHustle-sub000/internal/worksheet"
)

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	store       worksheet.Store
	saver       *worksheet.Saver
	exporter    export.Exporter
	jwtService  *JWTService
	rateLimiter *ratelimit.Limiter
}

// Config holds server configuration.
type Config struct {
	Port int
}

// New creates a server around a store and an exporter. The store should
// already carry the retry policy (see worksheet.RetryStore); the server
// adds per-document save serialization on top.
func New(cfg Config, store worksheet.Store, exporter export.Exporter) (*Server, error) {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	s := &Server{
		store:       store,
		saver:       worksheet.NewSaver(store),
		exporter:    exporter,
		jwtService:  NewJWTService(jwtConfig),
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /pillars", s.withAuth(s.handleListPillars))
	mux.HandleFunc("GET /pillars/{pillar}/schema", s.withAuth(s.handleGetSchema))

	mux.HandleFunc("GET /pillars/{pillar}/worksheet", s.withAuth(s.handleGetWorksheet))
	mux.HandleFunc("PUT /pillars/{pillar}/worksheet", s.withAuth(s.handlePutWorksheet))
	mux.HandleFunc("POST /pillars/{pillar}/worksheet/edits", s.withAuth(s.handleApplyEdit))

	mux.HandleFunc("POST /pillars/{pillar}/validate", s.withAuth(s.handleValidate))
	mux.HandleFunc("POST /pillars/{pillar}/sections/{section}/validate", s.withAuth(s.handleValidateSection))

	mux.HandleFunc("GET /pillars/{pillar}/progress", s.withAuth(s.handleGetProgress))
	mux.HandleFunc("POST /pillars/{pillar}/progress/advance", s.withAuth(s.handleAdvance))
	mux.HandleFunc("POST /pillars/{pillar}/progress/retreat", s.withAuth(s.handleRetreat))

	mux.HandleFunc("POST /pillars/{pillar}/sections/{section}/export", s.withAuth(s.handleExport))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // export renders can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Handler exposes the configured handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients over their token budget.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.rateLimiter.Allow(clientID(r), r.URL.Path) {
			s.errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// clientID identifies the caller for rate limiting; IP address for now.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
