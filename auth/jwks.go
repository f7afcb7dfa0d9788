// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// DefaultJWKSRefreshInterval is the minimum refresh interval of the key cache.
const DefaultJWKSRefreshInterval = 15 * time.Minute

// JWKSAuthProvider authenticates bearer tokens signed by an external identity
// provider whose public keys are published as a JWKS document.
type JWKSAuthProvider struct {
	jwksURL  string
	cache    *jwk.Cache
	issuer   string
	audience string
}

// JWKSOption configures a JWKSAuthProvider.
type JWKSOption func(*jwksOptions)

type jwksOptions struct {
	refresh    time.Duration
	httpClient *http.Client
}

// WithJWKSRefreshInterval sets the minimum interval between key refreshes.
func WithJWKSRefreshInterval(d time.Duration) JWKSOption {
	return func(o *jwksOptions) {
		if d > 0 {
			o.refresh = d
		}
	}
}

// WithJWKSHTTPClient sets the client used to fetch the key set.
func WithJWKSHTTPClient(c *http.Client) JWKSOption {
	return func(o *jwksOptions) { o.httpClient = c }
}

// NewJWKSAuthProvider registers jwksURL in an auto-refreshing cache and
// fetches it once so that a bad URL fails at startup. The cache stops
// refreshing when ctx is done.
func NewJWKSAuthProvider(ctx context.Context, jwksURL, issuer, audience string,
	opts ...JWKSOption) (*JWKSAuthProvider, error) {
	if jwksURL == "" {
		return nil, errors.New("jwks url is required")
	}
	o := jwksOptions{refresh: DefaultJWKSRefreshInterval}
	for _, opt := range opts {
		opt(&o)
	}
	registerOpts := []jwk.RegisterOption{jwk.WithMinRefreshInterval(o.refresh)}
	if o.httpClient != nil {
		registerOpts = append(registerOpts, jwk.WithHTTPClient(o.httpClient))
	}
	cache := jwk.NewCache(ctx)
	if err := cache.Register(jwksURL, registerOpts...); err != nil {
		return nil, fmt.Errorf("register jwks url: %w", err)
	}
	if _, err := cache.Refresh(ctx, jwksURL); err != nil {
		return nil, fmt.Errorf("fetch jwks from %s: %w", jwksURL, err)
	}
	return &JWKSAuthProvider{jwksURL: jwksURL, cache: cache, issuer: issuer, audience: audience}, nil
}

// Authenticate validates the bearer token of r against the cached key set.
func (p *JWKSAuthProvider) Authenticate(r *http.Request) (*User, error) {
	tokenString, err := bearerToken(r)
	if err != nil {
		return nil, err
	}
	keySet, err := p.cache.Get(r.Context(), p.jwksURL)
	if err != nil {
		return nil, fmt.Errorf("get jwks: %w", err)
	}
	parseOpts := []jwt.ParseOption{jwt.WithKeySet(keySet), jwt.WithValidate(true)}
	if p.issuer != "" {
		parseOpts = append(parseOpts, jwt.WithIssuer(p.issuer))
	}
	if p.audience != "" {
		parseOpts = append(parseOpts, jwt.WithAudience(p.audience))
	}
	token, err := jwt.Parse([]byte(tokenString), parseOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if token.Subject() == "" {
		return nil, fmt.Errorf("%w: missing subject claim", ErrInvalidToken)
	}
	claims, err := token.AsMap(r.Context())
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}
	return &User{ID: token.Subject(), Claims: claims}, nil
}
