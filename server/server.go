// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

// Package server serves the calculator agent over REST and A2A JSON-RPC.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trpc.group/trpc-go/a2a-calculator/agent"
	"trpc.group/trpc-go/a2a-calculator/auth"
	"trpc.group/trpc-go/a2a-calculator/log"
	"trpc.group/trpc-go/a2a-calculator/protocol"
)

// MetricsPath is where Prometheus metrics are exposed when enabled.
const MetricsPath = "/metrics"

// Greeter produces the greeting of the hello-world endpoint.
type Greeter interface {
	Hello(ctx context.Context) (string, error)
}

// Server is the HTTP front end of the calculator agent. Every question is
// answered by the Runner; the server itself holds no per-request state.
type Server struct {
	runner  agent.Runner
	greeter Greeter
	card    CardConfig

	mu         sync.Mutex
	httpServer *http.Server

	corsEnabled  bool
	maxBodyBytes int64
	readTimeout  time.Duration
	writeTimeout time.Duration
	idleTimeout  time.Duration

	authProvider   auth.Provider
	authMiddleware *auth.Middleware

	registry *prometheus.Registry
	metrics  *metrics
}

// NewServer creates a Server answering questions with runner.
func NewServer(runner agent.Runner, opts ...Option) (*Server, error) {
	if runner == nil {
		return nil, errors.New("NewServer requires a non-nil runner")
	}
	s := &Server{
		runner:       runner,
		card:         DefaultCardConfig(),
		corsEnabled:  true,
		maxBodyBytes: defaultMaxBodyBytes,
		readTimeout:  defaultReadTimeout,
		writeTimeout: defaultWriteTimeout,
		idleTimeout:  defaultIdleTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.authProvider != nil {
		s.authMiddleware = auth.NewMiddleware(s.authProvider)
	}
	if s.registry != nil {
		m, err := newMetrics(s.registry)
		if err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		s.metrics = m
	}
	return s, nil
}

// Start listens on address and serves until Stop is called.
func (s *Server) Start(address string) error {
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", address, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Stop is called.
func (s *Server) Serve(ln net.Listener) error {
	httpServer := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
		IdleTimeout:  s.idleTimeout,
	}
	s.mu.Lock()
	s.httpServer = httpServer
	s.mu.Unlock()
	log.Infof("Starting calculator agent server listening on %s...", ln.Addr())
	if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server Serve error: %w", err)
	}
	log.Info("Calculator agent server stopped.")
	return nil
}

// Stop gracefully shuts down the running HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	httpServer := s.httpServer
	s.mu.Unlock()
	if httpServer == nil {
		return errors.New("server not running")
	}
	log.Info("Attempting graceful shutdown of calculator agent server...")
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	log.Info("Calculator agent server shutdown complete.")
	return nil
}

// Handler returns the routes of the server. It can be mounted into an
// existing HTTP server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.recoverer)
	if s.metrics != nil {
		r.Use(s.metrics.middleware)
	}
	if s.corsEnabled {
		r.Use(cors)
	}

	r.Get("/", s.handleRoot)
	r.Route("/health", func(r chi.Router) {
		r.Get("/startup", s.handleHealth)
		r.Get("/live", s.handleHealth)
		r.Get("/ready", s.handleHealth)
	})
	r.Get(protocol.HelloWorldPath, s.handleHelloWorld)
	r.Get(protocol.CountLettersAgentCardPath, s.handleAgentCard)

	r.Group(func(r chi.Router) {
		if s.authMiddleware != nil {
			r.Use(s.authMiddleware.Wrap)
		}
		r.Post(protocol.CountLettersPath, s.handleCountLetters)
		r.Post(protocol.CountLettersA2APath, s.handleCountLettersA2A)
	})

	if s.registry != nil {
		r.Method(http.MethodGet, MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

// recoverer turns a panic in a handler into a 500 response.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				log.Errorf("Panic serving %s %s (request %s): %v",
					r.Method, r.URL.Path, middleware.GetReqID(r.Context()), p)
				writeJSON(w, http.StatusInternalServerError, protocol.ErrorResponse{Error: "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// cors adds permissive CORS headers and answers browser preflight requests.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+auth.DefaultAPIKeyHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
