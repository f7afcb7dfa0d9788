// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"trpc.group/trpc-go/a2a-calculator/auth"
)

const testKeyID = "calculator-test-key"

func newSigningKey(t *testing.T) (jwk.Key, jwk.Set) {
	t.Helper()
	raw, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	private, err := jwk.FromRaw(raw)
	require.NoError(t, err)
	require.NoError(t, private.Set(jwk.KeyIDKey, testKeyID))
	require.NoError(t, private.Set(jwk.AlgorithmKey, jwa.RS256))

	public, err := jwk.FromRaw(&raw.PublicKey)
	require.NoError(t, err)
	require.NoError(t, public.Set(jwk.KeyIDKey, testKeyID))
	require.NoError(t, public.Set(jwk.AlgorithmKey, jwa.RS256))
	set := jwk.NewSet()
	require.NoError(t, set.AddKey(public))
	return private, set
}

func signToken(t *testing.T, key jwk.Key, issuer, audience, subject string, ttl time.Duration) string {
	t.Helper()
	token := jwt.New()
	require.NoError(t, token.Set(jwt.IssuerKey, issuer))
	require.NoError(t, token.Set(jwt.AudienceKey, audience))
	require.NoError(t, token.Set(jwt.SubjectKey, subject))
	require.NoError(t, token.Set(jwt.IssuedAtKey, time.Now().Add(-time.Minute)))
	require.NoError(t, token.Set(jwt.ExpirationKey, time.Now().Add(ttl)))
	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256, key))
	require.NoError(t, err)
	return string(signed)
}

func jwksServer(t *testing.T, set jwk.Set) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(set))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestJWKSAuthProvider(t *testing.T) {
	key, set := newSigningKey(t)
	srv := jwksServer(t, set)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	provider, err := auth.NewJWKSAuthProvider(ctx, srv.URL, "https://idp.example.com", "calculator-agent")
	require.NoError(t, err)

	authenticate := func(token string) (*auth.User, error) {
		req := httptest.NewRequest(http.MethodPost, "/agents/count-letters-a2a", nil)
		req.Header.Set(auth.AuthHeaderName, "Bearer "+token)
		return provider.Authenticate(req)
	}

	t.Run("ValidToken", func(t *testing.T) {
		user, err := authenticate(signToken(t, key, "https://idp.example.com", "calculator-agent", "svc-1", time.Hour))
		require.NoError(t, err)
		assert.Equal(t, "svc-1", user.ID)
		assert.Equal(t, "https://idp.example.com", user.Claims["iss"])
	})

	t.Run("WrongIssuer", func(t *testing.T) {
		_, err := authenticate(signToken(t, key, "https://evil.example.com", "calculator-agent", "svc-1", time.Hour))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("WrongAudience", func(t *testing.T) {
		_, err := authenticate(signToken(t, key, "https://idp.example.com", "other", "svc-1", time.Hour))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		_, err := authenticate(signToken(t, key, "https://idp.example.com", "calculator-agent", "svc-1", -time.Hour))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("UnknownKey", func(t *testing.T) {
		otherKey, _ := newSigningKey(t)
		require.NoError(t, otherKey.Set(jwk.KeyIDKey, "rotated-away"))
		_, err := authenticate(signToken(t, otherKey, "https://idp.example.com", "calculator-agent", "svc-1", time.Hour))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("MissingToken", func(t *testing.T) {
		_, err := provider.Authenticate(httptest.NewRequest(http.MethodPost, "/", nil))
		assert.ErrorIs(t, err, auth.ErrMissingToken)
	})
}

func TestNewJWKSAuthProvider_Errors(t *testing.T) {
	_, err := auth.NewJWKSAuthProvider(context.Background(), "", "", "")
	assert.Error(t, err)

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	_, err = auth.NewJWKSAuthProvider(context.Background(), srv.URL, "", "",
		auth.WithJWKSRefreshInterval(time.Minute), auth.WithJWKSHTTPClient(srv.Client()))
	assert.Error(t, err)
}

func TestOAuth2ClientProvider(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(auth.AuthHeaderName)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	provider := auth.NewOAuth2TokenSourceProvider(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "abc"}))
	client := provider.ConfigureClient(&http.Client{Timeout: 2 * time.Second})
	assert.Equal(t, 2*time.Second, client.Timeout)

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "Bearer abc", gotAuth)
}

func TestOAuth2ClientCredentialsProvider(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"cc-token","token_type":"Bearer","expires_in":3600}`))
	}))
	defer tokenSrv.Close()

	var gotAuth string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(auth.AuthHeaderName)
	}))
	defer api.Close()

	provider := auth.NewOAuth2ClientCredentialsProvider("id", "secret", tokenSrv.URL, []string{"agent"})
	resp, err := provider.ConfigureClient(nil).Get(api.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "Bearer cc-token", gotAuth)
}
