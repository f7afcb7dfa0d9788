// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

// Package config holds the runtime configuration of the calculator agent
// server. Fields carry kong tags so the CLI can bind them to flags and
// environment variables directly.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Auth modes accepted by Config.Auth.Modes.
const (
	AuthNone   = "none"
	AuthAPIKey = "apikey"
	AuthJWT    = "jwt"
	AuthJWKS   = "jwks"
)

// AIConfig configures the hosted model service.
type AIConfig struct {
	Endpoint      string        `name:"endpoint" env:"AZURE_AI_PROJECT_ENDPOINT,OPENAI_BASE_URL" help:"Model service endpoint URL."`
	APIKey        string        `name:"api-key" env:"AZURE_AI_API_KEY,OPENAI_API_KEY" help:"Model service API key."`
	Model         string        `name:"model" env:"AZURE_AI_MODEL_DEPLOYMENT_NAME" help:"Model deployment name."`
	APIVersion    string        `name:"api-version" env:"AZURE_AI_API_VERSION" help:"Azure API version override."`
	PollInterval  time.Duration `name:"poll-interval" default:"500ms" help:"Delay between run status checks."`
	MaxToolRounds int           `name:"max-tool-rounds" default:"8" help:"Maximum tool-call rounds per run."`
}

// AuthConfig configures inbound authentication of the agent endpoints.
type AuthConfig struct {
	Modes     []string `name:"mode" env:"AUTH_MODE" default:"none" help:"Authentication modes (none, apikey, jwt, jwks). Several modes are tried in order."`
	APIKeys   []string `name:"api-keys" env:"AUTH_API_KEYS" help:"Accepted API keys, as key or key=user."`
	APIHeader string   `name:"api-key-header" env:"AUTH_API_KEY_HEADER" default:"X-API-Key" help:"Header carrying the API key."`
	JWTSecret string   `name:"jwt-secret" env:"AUTH_JWT_SECRET" help:"HMAC secret for jwt mode."`
	JWKSURL   string   `name:"jwks-url" env:"AUTH_JWKS_URL" help:"JWKS URL for jwks mode."`
	Issuer    string   `name:"issuer" env:"AUTH_ISSUER" help:"Required token issuer."`
	Audience  string   `name:"audience" env:"AUTH_AUDIENCE" help:"Required token audience."`
}

// Config is the server configuration.
type Config struct {
	Addr         string        `name:"addr" env:"ADDR" default:":8000" help:"Listen address."`
	CORS         bool          `name:"cors" env:"CORS_ENABLED" help:"Enable permissive CORS headers."`
	Metrics      bool          `name:"metrics" env:"METRICS_ENABLED" default:"true" negatable:"" help:"Expose Prometheus metrics."`
	ReadTimeout  time.Duration `name:"read-timeout" default:"10s" help:"HTTP read timeout."`
	WriteTimeout time.Duration `name:"write-timeout" default:"2m" help:"HTTP write timeout."`
	IdleTimeout  time.Duration `name:"idle-timeout" default:"60s" help:"HTTP idle timeout."`

	AI   AIConfig   `embed:"" prefix:"ai-"`
	Auth AuthConfig `embed:"" prefix:"auth-"`
}

// Validate checks the configuration before the server starts.
func (c *Config) Validate() error {
	if c.AI.Endpoint != "" {
		u, err := url.Parse(c.AI.Endpoint)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("invalid model endpoint %q", c.AI.Endpoint)
		}
	}
	if c.AI.APIKey == "" {
		return errors.New("model api key is required")
	}
	if c.AI.Model == "" {
		return errors.New("model deployment name is required")
	}
	if c.AI.MaxToolRounds < 0 {
		return fmt.Errorf("max tool rounds must not be negative, got %d", c.AI.MaxToolRounds)
	}
	for _, mode := range c.Auth.EnabledModes() {
		switch mode {
		case AuthAPIKey:
			if len(c.Auth.APIKeys) == 0 {
				return errors.New("apikey auth requires at least one api key")
			}
		case AuthJWT:
			if c.Auth.JWTSecret == "" {
				return errors.New("jwt auth requires a secret")
			}
		case AuthJWKS:
			if c.Auth.JWKSURL == "" {
				return errors.New("jwks auth requires a jwks url")
			}
		default:
			return fmt.Errorf("unknown auth mode %q", mode)
		}
	}
	return nil
}

// EnabledModes returns the configured auth modes in order, without "none",
// blanks and duplicates. An empty result disables authentication.
func (a AuthConfig) EnabledModes() []string {
	var modes []string
	seen := make(map[string]bool, len(a.Modes))
	for _, mode := range a.Modes {
		mode = strings.ToLower(strings.TrimSpace(mode))
		if mode == "" || mode == AuthNone || seen[mode] {
			continue
		}
		seen[mode] = true
		modes = append(modes, mode)
	}
	return modes
}

// APIKeyMap turns the configured keys into a key to user map. A bare key
// maps to a user named after its position.
func (a AuthConfig) APIKeyMap() map[string]string {
	keys := make(map[string]string, len(a.APIKeys))
	for i, entry := range a.APIKeys {
		key, user, ok := strings.Cut(entry, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if !ok || strings.TrimSpace(user) == "" {
			user = fmt.Sprintf("client-%d", i+1)
		}
		keys[key] = strings.TrimSpace(user)
	}
	return keys
}

// LoadDotEnv loads variables from the given .env files, then from .env in
// the working directory. Missing files are skipped and variables already set
// in the environment are kept.
func LoadDotEnv(paths ...string) error {
	for _, path := range append(paths, ".env") {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}
