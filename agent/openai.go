// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package agent

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ClientConfig configures the connection to the hosted model service.
type ClientConfig struct {
	// Endpoint is the service base URL. Azure endpoints are detected by host.
	// Empty means the public OpenAI API.
	Endpoint string
	// APIKey authenticates the calls.
	APIKey string
	// APIVersion overrides the Azure API version.
	APIVersion string
	// HTTPClient overrides the underlying HTTP client.
	HTTPClient *http.Client
}

// NewOpenAIClient builds a go-openai client for cfg. The returned client
// implements both AssistantsClient and ChatClient.
func NewOpenAIClient(cfg ClientConfig) (*openai.Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("api key is required")
	}
	var clientCfg openai.ClientConfig
	if isAzureEndpoint(cfg.Endpoint) {
		clientCfg = openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
		if cfg.APIVersion != "" {
			clientCfg.APIVersion = cfg.APIVersion
		}
		// Model names are deployment names already.
		clientCfg.AzureModelMapperFunc = func(model string) string { return model }
	} else {
		clientCfg = openai.DefaultConfig(cfg.APIKey)
		if cfg.Endpoint != "" {
			clientCfg.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")
		}
	}
	if cfg.HTTPClient != nil {
		clientCfg.HTTPClient = cfg.HTTPClient
	}
	return openai.NewClientWithConfig(clientCfg), nil
}

func isAzureEndpoint(endpoint string) bool {
	if endpoint == "" {
		return false
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return strings.HasSuffix(host, ".azure.com") || strings.HasSuffix(host, ".azure-api.net")
}
