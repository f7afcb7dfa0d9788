// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

// Package auth authenticates callers of the calculator agent endpoints and
// configures outgoing clients with matching credentials.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"trpc.group/trpc-go/a2a-calculator/log"
)

// ContextKey type for context values.
type ContextKey string

const (
	// AuthUserKey is the key used to store the authenticated user in the context.
	AuthUserKey ContextKey = "auth_user"
	// AuthHeaderName is the name of the header carrying bearer tokens.
	AuthHeaderName = "Authorization"
	// TokenTypeBearer is the scheme of bearer tokens.
	TokenTypeBearer = "Bearer"
	// DefaultAPIKeyHeader is the header read by APIKeyAuthProvider by default.
	DefaultAPIKeyHeader = "X-API-Key"
)

// Authentication errors.
var (
	ErrMissingToken      = errors.New("missing authentication token")
	ErrInvalidToken      = errors.New("invalid authentication token")
	ErrInvalidAuthHeader = errors.New("invalid authorization header format")
)

// User represents an authenticated caller.
type User struct {
	// ID is the unique identifier of the caller, usually the token subject.
	ID string
	// Claims holds the remaining token claims, if any.
	Claims map[string]interface{}
}

// Provider authenticates incoming requests.
type Provider interface {
	Authenticate(r *http.Request) (*User, error)
}

// ClientProvider attaches credentials to outgoing requests.
type ClientProvider interface {
	// ConfigureClient returns a client that authenticates its requests.
	ConfigureClient(client *http.Client) *http.Client
}

// UserFromContext returns the user stored by Middleware.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(AuthUserKey).(*User)
	return user, ok && user != nil
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get(AuthHeaderName)
	if header == "" {
		return "", ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, TokenTypeBearer) || strings.TrimSpace(token) == "" {
		return "", ErrInvalidAuthHeader
	}
	return strings.TrimSpace(token), nil
}

// withTransport returns a copy of client whose transport is wrapped by wrap.
func withTransport(client *http.Client, wrap func(base http.RoundTripper) http.RoundTripper) *http.Client {
	if client == nil {
		client = &http.Client{}
	}
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	newClient := *client
	newClient.Transport = wrap(base)
	return &newClient
}

// roundTripperFunc adapts a function to http.RoundTripper.
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Middleware rejects unauthenticated requests with 401.
type Middleware struct {
	provider Provider
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(provider Provider) *Middleware {
	return &Middleware{provider: provider}
}

// Wrap adds authentication to an HTTP handler. The authenticated user is
// available to next through UserFromContext.
func (m *Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.provider.Authenticate(r)
		if err != nil {
			log.Debugf("Rejected %s %s: %v", r.Method, r.URL.Path, err)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("WWW-Authenticate", TokenTypeBearer)
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
			return
		}
		ctx := context.WithValue(r.Context(), AuthUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
