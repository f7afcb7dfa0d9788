// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package auth

import (
	"crypto/subtle"
	"net/http"
)

// APIKeyAuthProvider authenticates requests using static API keys.
type APIKeyAuthProvider struct {
	// KeyMap maps API keys to user IDs.
	KeyMap map[string]string
	// HeaderName is the name of the header containing the API key.
	HeaderName string

	clientAPIKey string
}

// NewAPIKeyAuthProvider creates a new API key authentication provider.
func NewAPIKeyAuthProvider(keyMap map[string]string, headerName string) *APIKeyAuthProvider {
	if headerName == "" {
		headerName = DefaultAPIKeyHeader
	}
	return &APIKeyAuthProvider{KeyMap: keyMap, HeaderName: headerName}
}

// SetClientAPIKey sets the key sent by clients configured with ConfigureClient.
func (p *APIKeyAuthProvider) SetClientAPIKey(apiKey string) {
	p.clientAPIKey = apiKey
}

// Authenticate validates the API key header of r.
func (p *APIKeyAuthProvider) Authenticate(r *http.Request) (*User, error) {
	apiKey := r.Header.Get(p.HeaderName)
	if apiKey == "" {
		return nil, ErrMissingToken
	}
	for key, userID := range p.KeyMap {
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1 {
			return &User{ID: userID}, nil
		}
	}
	return nil, ErrInvalidToken
}

// ConfigureClient implements ClientProvider.
func (p *APIKeyAuthProvider) ConfigureClient(client *http.Client) *http.Client {
	if p.clientAPIKey == "" {
		return client
	}
	return withTransport(client, func(base http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			clone := req.Clone(req.Context())
			clone.Header.Set(p.HeaderName, p.clientAPIKey)
			return base.RoundTrip(clone)
		})
	})
}
