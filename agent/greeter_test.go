// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package agent

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChat struct {
	req  openai.ChatCompletionRequest
	resp openai.ChatCompletionResponse
	err  error
}

func (s *stubChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (
	openai.ChatCompletionResponse, error) {
	s.req = req
	return s.resp, s.err
}

func TestGreeter_Hello(t *testing.T) {
	chat := &stubChat{resp: openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{
		{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: " Hello, world! \n"}},
	}}}
	g, err := NewGreeter(chat, "gpt-4o-mini")
	require.NoError(t, err)

	msg, err := g.Hello(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hello, world!", msg)
	assert.Equal(t, "gpt-4o-mini", chat.req.Model)
	require.Len(t, chat.req.Messages, 1)
	assert.Equal(t, helloPrompt, chat.req.Messages[0].Content)
}

func TestGreeter_Errors(t *testing.T) {
	_, err := NewGreeter(nil, "m")
	assert.Error(t, err)
	_, err = NewGreeter(&stubChat{}, "")
	assert.Error(t, err)

	g, err := NewGreeter(&stubChat{err: errors.New("boom")}, "m")
	require.NoError(t, err)
	_, err = g.Hello(context.Background())
	assert.ErrorContains(t, err, "boom")

	g, err = NewGreeter(&stubChat{}, "m")
	require.NoError(t, err)
	_, err = g.Hello(context.Background())
	assert.ErrorContains(t, err, "no choices")
}

func TestIsAzureEndpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		want     bool
	}{
		{"", false},
		{"https://api.openai.com/v1", false},
		{"https://my-project.openai.azure.com/", true},
		{"https://gateway.azure-api.net/openai", true},
		{"http://localhost:11434/v1", false},
		{"://bad", false},
	}
	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			assert.Equal(t, tt.want, isAzureEndpoint(tt.endpoint))
		})
	}
}

func TestNewOpenAIClient(t *testing.T) {
	_, err := NewOpenAIClient(ClientConfig{})
	assert.Error(t, err, "api key is required")

	c, err := NewOpenAIClient(ClientConfig{APIKey: "k", Endpoint: "https://x.openai.azure.com", APIVersion: "2024-05-01-preview"})
	require.NoError(t, err)
	assert.NotNil(t, c)

	c, err = NewOpenAIClient(ClientConfig{APIKey: "k", Endpoint: "http://localhost:8080/v1/"})
	require.NoError(t, err)
	var _ AssistantsClient = c
	var _ ChatClient = c
}
