// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const helloPrompt = "Say hello to the world in one short, friendly sentence."

// ChatClient is the subset of the go-openai client used by Greeter.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (
		openai.ChatCompletionResponse, error)
}

// Greeter checks the model round trip with a single chat completion.
type Greeter struct {
	chat  ChatClient
	model string
}

// NewGreeter builds a Greeter on chat using the given model deployment.
func NewGreeter(chat ChatClient, model string) (*Greeter, error) {
	if chat == nil {
		return nil, errors.New("chat client is required")
	}
	if model == "" {
		return nil, errors.New("model deployment is required")
	}
	return &Greeter{chat: chat, model: model}, nil
}

// Hello asks the model for a greeting.
func (g *Greeter) Hello(ctx context.Context) (string, error) {
	resp, err := g.chat.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: helloPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("hello chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("hello chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
