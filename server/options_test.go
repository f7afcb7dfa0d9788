// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/a2a-calculator/auth"
)

func TestWithCORSEnabled(t *testing.T) {
	s := &Server{}
	WithCORSEnabled(true)(s)
	assert.True(t, s.corsEnabled)
	WithCORSEnabled(false)(s)
	assert.False(t, s.corsEnabled)
}

func TestWithTimeouts(t *testing.T) {
	s := &Server{}
	WithReadTimeout(30 * time.Second)(s)
	WithWriteTimeout(90 * time.Second)(s)
	WithIdleTimeout(5 * time.Minute)(s)
	assert.Equal(t, 30*time.Second, s.readTimeout)
	assert.Equal(t, 90*time.Second, s.writeTimeout)
	assert.Equal(t, 5*time.Minute, s.idleTimeout)
}

func TestWithMaxBodyBytes(t *testing.T) {
	s := &Server{maxBodyBytes: defaultMaxBodyBytes}
	WithMaxBodyBytes(0)(s)
	assert.Equal(t, int64(defaultMaxBodyBytes), s.maxBodyBytes)
	WithMaxBodyBytes(512)(s)
	assert.Equal(t, int64(512), s.maxBodyBytes)
}

type mockAuthProvider struct{}

func (p *mockAuthProvider) Authenticate(*http.Request) (*auth.User, error) {
	return &auth.User{ID: "test-user"}, nil
}

func TestWithAuthProvider(t *testing.T) {
	provider := &mockAuthProvider{}
	s, err := NewServer(&mockRunner{}, WithAuthProvider(provider))
	require.NoError(t, err)
	assert.Equal(t, provider, s.authProvider)
	assert.NotNil(t, s.authMiddleware)
}

func TestWithMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	s, err := NewServer(&mockRunner{}, WithMetrics(reg))
	require.NoError(t, err)
	assert.Same(t, reg, s.registry)
	assert.NotNil(t, s.metrics)
}

func TestWithCardConfigAndGreeter(t *testing.T) {
	g := stubGreeter{msg: "hi"}
	s, err := NewServer(&mockRunner{}, WithCardConfig(CardConfig{Name: "Other"}), WithGreeter(g))
	require.NoError(t, err)
	assert.Equal(t, "Other", s.card.Name)
	assert.Equal(t, g, s.greeter)
}

func TestNewServer_Defaults(t *testing.T) {
	s, err := NewServer(&mockRunner{})
	require.NoError(t, err)
	assert.True(t, s.corsEnabled)
	assert.Equal(t, defaultReadTimeout, s.readTimeout)
	assert.Equal(t, defaultWriteTimeout, s.writeTimeout)
	assert.Equal(t, defaultIdleTimeout, s.idleTimeout)
	assert.Equal(t, DefaultCardConfig(), s.card)
	assert.Nil(t, s.authMiddleware)
	assert.Nil(t, s.metrics)
}
