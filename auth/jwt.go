// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenLifetime = time.Hour

// JWTAuthProvider authenticates requests carrying HS256 tokens signed with a
// shared secret. It can also mint tokens for clients of the agent.
type JWTAuthProvider struct {
	// Secret is the HMAC key.
	Secret []byte
	// Audience is the expected audience. Empty disables the check.
	Audience string
	// Issuer is the expected issuer. Empty disables the check.
	Issuer string
	// TokenLifetime is the validity of tokens created by CreateToken.
	TokenLifetime time.Duration
	// Subject is the subject of tokens minted by ConfigureClient.
	Subject string
}

// NewJWTAuthProvider creates a new JWT authentication provider.
func NewJWTAuthProvider(secret []byte, audience, issuer string, lifetime time.Duration) *JWTAuthProvider {
	if lifetime <= 0 {
		lifetime = defaultTokenLifetime
	}
	return &JWTAuthProvider{
		Secret:        secret,
		Audience:      audience,
		Issuer:        issuer,
		TokenLifetime: lifetime,
		Subject:       "calculator-client",
	}
}

// Authenticate validates the bearer token of r.
func (p *JWTAuthProvider) Authenticate(r *http.Request) (*User, error) {
	tokenString, err := bearerToken(r)
	if err != nil {
		return nil, err
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if p.Audience != "" {
		opts = append(opts, jwt.WithAudience(p.Audience))
	}
	if p.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.Issuer))
	}
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return p.Secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, fmt.Errorf("%w: missing subject claim", ErrInvalidToken)
	}
	return &User{ID: subject, Claims: claims}, nil
}

// CreateToken signs a token for subject with the provider settings.
func (p *JWTAuthProvider) CreateToken(subject string, extra map[string]interface{}) (string, error) {
	if len(p.Secret) == 0 {
		return "", errors.New("jwt secret is empty")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(p.TokenLifetime).Unix(),
	}
	if p.Audience != "" {
		claims["aud"] = p.Audience
	}
	if p.Issuer != "" {
		claims["iss"] = p.Issuer
	}
	for k, v := range extra {
		claims[k] = v
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.Secret)
}

// ConfigureClient implements ClientProvider. A fresh token is minted for
// every request.
func (p *JWTAuthProvider) ConfigureClient(client *http.Client) *http.Client {
	return withTransport(client, func(base http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			token, err := p.CreateToken(p.Subject, nil)
			if err != nil {
				return nil, fmt.Errorf("create jwt: %w", err)
			}
			clone := req.Clone(req.Context())
			clone.Header.Set(AuthHeaderName, TokenTypeBearer+" "+token)
			return base.RoundTrip(clone)
		})
	})
}
