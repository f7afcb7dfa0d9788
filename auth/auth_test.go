// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/a2a-calculator/auth"
)

func TestJWTAuthProvider(t *testing.T) {
	secret := []byte("test-secret-key-for-jwt-provider")
	provider := auth.NewJWTAuthProvider(secret, "calculator", "issuer", time.Hour)

	t.Run("ValidToken", func(t *testing.T) {
		token, err := provider.CreateToken("user123", map[string]interface{}{"role": "admin"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/agents/count-letters", nil)
		req.Header.Set(auth.AuthHeaderName, "Bearer "+token)
		user, err := provider.Authenticate(req)
		require.NoError(t, err)
		assert.Equal(t, "user123", user.ID)
		assert.Equal(t, "admin", user.Claims["role"])
	})

	t.Run("MissingToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		user, err := provider.Authenticate(req)
		assert.ErrorIs(t, err, auth.ErrMissingToken)
		assert.Nil(t, user)
	})

	t.Run("InvalidHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(auth.AuthHeaderName, "Basic dXNlcjpwYXNz")
		_, err := provider.Authenticate(req)
		assert.ErrorIs(t, err, auth.ErrInvalidAuthHeader)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		expired := *provider
		expired.TokenLifetime = -time.Minute
		token, err := expired.CreateToken("user123", nil)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(auth.AuthHeaderName, "Bearer "+token)
		_, err = provider.Authenticate(req)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("WrongAudience", func(t *testing.T) {
		other := auth.NewJWTAuthProvider(secret, "someone-else", "issuer", time.Hour)
		token, err := other.CreateToken("user123", nil)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(auth.AuthHeaderName, "Bearer "+token)
		_, err = provider.Authenticate(req)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := auth.NewJWTAuthProvider([]byte("another-secret"), "calculator", "issuer", time.Hour)
		token, err := other.CreateToken("user123", nil)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(auth.AuthHeaderName, "Bearer "+token)
		_, err = provider.Authenticate(req)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("ConfigureClient", func(t *testing.T) {
		srv := httptest.NewServer(auth.NewMiddleware(provider).Wrap(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				user, ok := auth.UserFromContext(r.Context())
				require.True(t, ok)
				_, _ = w.Write([]byte(user.ID))
			})))
		defer srv.Close()

		client := provider.ConfigureClient(&http.Client{Timeout: time.Second})
		assert.Equal(t, time.Second, client.Timeout)
		resp, err := client.Get(srv.URL)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestAPIKeyAuthProvider(t *testing.T) {
	provider := auth.NewAPIKeyAuthProvider(map[string]string{"key-1": "alice"}, "")
	assert.Equal(t, auth.DefaultAPIKeyHeader, provider.HeaderName)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	_, err := provider.Authenticate(req)
	assert.ErrorIs(t, err, auth.ErrMissingToken)

	req.Header.Set(auth.DefaultAPIKeyHeader, "nope")
	_, err = provider.Authenticate(req)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	req.Header.Set(auth.DefaultAPIKeyHeader, "key-1")
	user, err := provider.Authenticate(req)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.ID)

	base := &http.Client{}
	assert.Same(t, base, provider.ConfigureClient(base), "no client key configured")

	provider.SetClientAPIKey("key-1")
	srv := httptest.NewServer(auth.NewMiddleware(provider).Wrap(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })))
	defer srv.Close()
	resp, err := provider.ConfigureClient(base).Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestChainAuthProvider(t *testing.T) {
	apiKey := auth.NewAPIKeyAuthProvider(map[string]string{"k": "bob"}, "")
	jwtProvider := auth.NewJWTAuthProvider([]byte("secret"), "", "", time.Hour)
	chain := auth.NewChainAuthProvider(jwtProvider, apiKey)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(auth.DefaultAPIKeyHeader, "k")
	user, err := chain.Authenticate(req)
	require.NoError(t, err)
	assert.Equal(t, "bob", user.ID)

	_, err = chain.Authenticate(httptest.NewRequest(http.MethodPost, "/", nil))
	assert.ErrorIs(t, err, auth.ErrMissingToken)

	_, err = auth.NewChainAuthProvider().Authenticate(req)
	assert.ErrorIs(t, err, auth.ErrMissingToken)
}

func TestMiddleware_Unauthorized(t *testing.T) {
	called := false
	handler := auth.NewMiddleware(auth.NewAPIKeyAuthProvider(map[string]string{"k": "u"}, "")).Wrap(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/agents/count-letters", nil))
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized", body["error"])
}
