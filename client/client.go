// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

// Package client calls a running calculator agent over REST or A2A JSON-RPC.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"trpc.group/trpc-go/a2a-calculator/auth"
	"trpc.group/trpc-go/a2a-calculator/internal/jsonrpc"
	"trpc.group/trpc-go/a2a-calculator/log"
	"trpc.group/trpc-go/a2a-calculator/protocol"
)

const (
	defaultTimeout   = 2 * time.Minute
	defaultUserAgent = "a2a-calculator-client/0.1"
)

// A2AClient talks to a calculator agent server.
type A2AClient struct {
	baseURL      *url.URL            // Base URL of the agent server.
	rpcURL       string              // JSON-RPC endpoint, resolved from the card when empty.
	httpClient   *http.Client        // Underlying HTTP client.
	userAgent    string              // User-Agent header string.
	authProvider auth.ClientProvider // Authentication provider.
}

// NewA2AClient creates a client for the server at agentURL, e.g.
// "http://localhost:8000".
func NewA2AClient(agentURL string, opts ...Option) (*A2AClient, error) {
	parsedURL, err := url.ParseRequestURI(strings.TrimSuffix(agentURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid agent URL %q: %w", agentURL, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid agent URL %q: scheme must be http or https", agentURL)
	}
	client := &A2AClient{
		baseURL:    parsedURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func (c *A2AClient) endpoint(path string) string {
	return c.baseURL.String() + path
}

// GetAgentCard fetches the agent card of the count-letters agent.
func (c *A2AClient) GetAgentCard(ctx context.Context) (*protocol.AgentCard, error) {
	var card protocol.AgentCard
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint(protocol.CountLettersAgentCardPath), nil, &card); err != nil {
		return nil, fmt.Errorf("a2aClient.GetAgentCard: %w", err)
	}
	return &card, nil
}

// ResolveRPCURL uses the JSON-RPC interface advertised by the agent card for
// subsequent SendMessage calls, and returns it.
func (c *A2AClient) ResolveRPCURL(ctx context.Context) (string, error) {
	card, err := c.GetAgentCard(ctx)
	if err != nil {
		return "", err
	}
	rpcURL := card.InterfaceURL(protocol.TransportJSONRPC)
	if rpcURL == "" {
		return "", fmt.Errorf("a2aClient.ResolveRPCURL: agent card %q has no JSON-RPC interface", card.Name)
	}
	c.rpcURL = rpcURL
	return rpcURL, nil
}

// CountLetters asks question through the REST endpoint.
func (c *A2AClient) CountLetters(ctx context.Context, question string) (*protocol.CountLettersResponse, error) {
	var resp protocol.CountLettersResponse
	err := c.doJSON(ctx, http.MethodPost, c.endpoint(protocol.CountLettersPath),
		protocol.CountLettersRequest{Question: question}, &resp)
	if err != nil {
		return nil, fmt.Errorf("a2aClient.CountLetters: %w", err)
	}
	return &resp, nil
}

// SendMessage sends text as a user message and returns the agent reply.
// A JSON-RPC error reply is returned as a *jsonrpc.Error.
func (c *A2AClient) SendMessage(ctx context.Context, text string) (*protocol.Message, error) {
	return c.SendMessageParams(ctx, protocol.SendMessageParams{
		Message: protocol.NewMessage(protocol.MessageRoleUser, []protocol.Part{protocol.NewTextPart(text)}),
	})
}

// SendMessageParams sends params with the message/send method.
func (c *A2AClient) SendMessageParams(ctx context.Context, params protocol.SendMessageParams) (*protocol.Message, error) {
	request := jsonrpc.NewRequest(protocol.MethodMessageSend, "")
	paramsBytes, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("a2aClient.SendMessage: failed to marshal params: %w", err)
	}
	request.Params = paramsBytes

	response, err := c.doRPC(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("a2aClient.SendMessage: %w", err)
	}
	if response.Error != nil {
		return nil, response.Error
	}
	if len(response.Result) == 0 {
		return nil, fmt.Errorf("a2aClient.SendMessage: rpc response missing required 'result' field for id %s",
			request.ID)
	}
	msg := &protocol.Message{}
	if err := json.Unmarshal(response.Result, msg); err != nil {
		return nil, fmt.Errorf("a2aClient.SendMessage: failed to unmarshal rpc result: %w. Raw result: %s",
			err, string(response.Result))
	}
	return msg, nil
}

// doRPC posts a JSON-RPC request. Error replies carry a JSON-RPC body with a
// 4xx or 5xx status, so the body is decoded before the status is judged.
func (c *A2AClient) doRPC(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.RawResponse, error) {
	target := c.rpcURL
	if target == "" {
		target = c.endpoint(protocol.CountLettersA2APath)
	}
	log.Debugf("A2A Client Request -> Method: %s, ID: %s, URL: %s", request.Method, request.ID, target)
	status, body, err := c.do(ctx, http.MethodPost, target, request)
	if err != nil {
		return nil, err
	}
	log.Debugf("A2A Client Response <- Status: %d, ID: %s", status, request.ID)
	response := &jsonrpc.RawResponse{}
	if err := json.Unmarshal(body, response); err != nil || (response.Error == nil && len(response.Result) == 0) {
		if status < 200 || status >= 300 {
			return nil, fmt.Errorf("unexpected http status %d: %s", status, string(body))
		}
		return nil, fmt.Errorf("failed to decode response body (status %d): %v. Body: %s", status, err, string(body))
	}
	return response, nil
}

// doJSON performs a plain JSON request and decodes a 2xx reply into out.
func (c *A2AClient) doJSON(ctx context.Context, method, target string, in, out interface{}) error {
	status, body, err := c.do(ctx, method, target, in)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		var errBody protocol.ErrorResponse
		if json.Unmarshal(body, &errBody) == nil && errBody.Error != "" {
			return fmt.Errorf("unexpected http status %d: %s", status, errBody.Error)
		}
		return fmt.Errorf("unexpected http status %d: %s", status, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

func (c *A2AClient) do(ctx context.Context, method, target string, in interface{}) (int, []byte, error) {
	var reader io.Reader
	if in != nil {
		reqBody, err := json.Marshal(in)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(reqBody)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create http request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body (status %d): %w", resp.StatusCode, err)
	}
	return resp.StatusCode, body, nil
}
