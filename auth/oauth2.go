// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package auth

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// OAuth2ClientProvider obtains bearer tokens for outgoing requests, typically
// for an agent protected by a JWKSAuthProvider.
type OAuth2ClientProvider struct {
	tokenSource oauth2.TokenSource
}

// NewOAuth2ClientCredentialsProvider uses the client credentials grant.
func NewOAuth2ClientCredentialsProvider(clientID, clientSecret, tokenURL string,
	scopes []string) *OAuth2ClientProvider {
	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		Scopes:       scopes,
	}
	return &OAuth2ClientProvider{tokenSource: cfg.TokenSource(context.Background())}
}

// NewOAuth2TokenSourceProvider uses an existing token source.
func NewOAuth2TokenSourceProvider(ts oauth2.TokenSource) *OAuth2ClientProvider {
	return &OAuth2ClientProvider{tokenSource: ts}
}

// ConfigureClient implements ClientProvider. The timeout of client is kept.
func (p *OAuth2ClientProvider) ConfigureClient(client *http.Client) *http.Client {
	ts := oauth2.ReuseTokenSource(nil, p.tokenSource)
	return withTransport(client, func(base http.RoundTripper) http.RoundTripper {
		return &oauth2.Transport{Source: ts, Base: base}
	})
}
