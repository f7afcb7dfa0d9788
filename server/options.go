// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"trpc.group/trpc-go/a2a-calculator/auth"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 2 * time.Minute
	defaultIdleTimeout  = 60 * time.Second
	defaultMaxBodyBytes = 1 << 20
)

// Option is a function that configures the Server.
type Option func(*Server)

// WithCORSEnabled enables CORS for the server.
func WithCORSEnabled(enabled bool) Option {
	return func(s *Server) {
		s.corsEnabled = enabled
	}
}

// WithReadTimeout sets the read timeout for the HTTP server.
func WithReadTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.readTimeout = timeout
	}
}

// WithWriteTimeout sets the write timeout for the HTTP server. It bounds the
// whole agent run of a request.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.writeTimeout = timeout
	}
}

// WithIdleTimeout sets the idle timeout for the HTTP server.
func WithIdleTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.idleTimeout = timeout
	}
}

// WithMaxBodyBytes limits the size of request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithAuthProvider protects the agent endpoints with provider.
// If not set, the server will not require authentication.
func WithAuthProvider(provider auth.Provider) Option {
	return func(s *Server) {
		s.authProvider = provider
	}
}

// WithMetrics registers the server metrics in reg and exposes reg on
// MetricsPath.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// WithCardConfig sets the static fields of the agent card.
func WithCardConfig(cfg CardConfig) Option {
	return func(s *Server) {
		s.card = cfg
	}
}

// WithGreeter enables the hello-world endpoint.
func WithGreeter(g Greeter) Option {
	return func(s *Server) {
		s.greeter = g
	}
}
