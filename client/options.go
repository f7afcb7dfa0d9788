// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package client

import (
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"trpc.group/trpc-go/a2a-calculator/auth"
)

// Option is a functional option type for configuring the A2AClient.
type Option func(*A2AClient)

// WithHTTPClient sets a custom http.Client for the A2AClient.
func WithHTTPClient(client *http.Client) Option {
	return func(c *A2AClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the timeout for the underlying http.Client. It bounds a
// whole agent run.
func WithTimeout(timeout time.Duration) Option {
	return func(c *A2AClient) {
		if timeout > 0 && c.httpClient != nil {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithUserAgent sets a custom User-Agent header for requests.
func WithUserAgent(userAgent string) Option {
	return func(c *A2AClient) {
		c.userAgent = userAgent
	}
}

// WithRPCURL sets the JSON-RPC endpoint instead of the default path.
func WithRPCURL(rpcURL string) Option {
	return func(c *A2AClient) {
		c.rpcURL = rpcURL
	}
}

// WithJWTAuth signs every request with an HS256 token.
func WithJWTAuth(secret []byte, audience, issuer string, lifetime time.Duration) Option {
	return WithAuthProvider(auth.NewJWTAuthProvider(secret, audience, issuer, lifetime))
}

// WithAPIKeyAuth sends apiKey in headerName with every request.
func WithAPIKeyAuth(apiKey, headerName string) Option {
	provider := auth.NewAPIKeyAuthProvider(nil, headerName)
	provider.SetClientAPIKey(apiKey)
	return WithAuthProvider(provider)
}

// WithOAuth2ClientCredentials obtains bearer tokens with the client
// credentials grant.
func WithOAuth2ClientCredentials(clientID, clientSecret, tokenURL string, scopes []string) Option {
	return WithAuthProvider(auth.NewOAuth2ClientCredentialsProvider(clientID, clientSecret, tokenURL, scopes))
}

// WithOAuth2TokenSource takes bearer tokens from tokenSource.
func WithOAuth2TokenSource(tokenSource oauth2.TokenSource) Option {
	return WithAuthProvider(auth.NewOAuth2TokenSourceProvider(tokenSource))
}

// WithAuthProvider uses a custom provider to authenticate requests. It must
// come after WithHTTPClient.
func WithAuthProvider(provider auth.ClientProvider) Option {
	return func(c *A2AClient) {
		c.authProvider = provider
		c.httpClient = provider.ConfigureClient(c.httpClient)
	}
}
