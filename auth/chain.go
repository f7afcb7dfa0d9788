// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package auth

import "net/http"

// ChainAuthProvider accepts a request if any of its providers does.
type ChainAuthProvider struct {
	providers []Provider
}

// NewChainAuthProvider creates a new chain authentication provider.
func NewChainAuthProvider(providers ...Provider) *ChainAuthProvider {
	return &ChainAuthProvider{providers: providers}
}

// Authenticate returns the first successful authentication, or the last error.
func (p *ChainAuthProvider) Authenticate(r *http.Request) (*User, error) {
	lastErr := ErrMissingToken
	for _, provider := range p.providers {
		user, err := provider.Authenticate(r)
		if err == nil {
			return user, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// ConfigureClient uses the first provider that implements ClientProvider.
func (p *ChainAuthProvider) ConfigureClient(client *http.Client) *http.Client {
	for _, provider := range p.providers {
		if cp, ok := provider.(ClientProvider); ok {
			return cp.ConfigureClient(client)
		}
	}
	return client
}
