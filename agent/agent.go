// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

// Package agent talks to the hosted LLM agent that answers calculator
// questions with the help of the local tools.
package agent

import (
	"context"
	"errors"
)

// Answer is the structured reply of the calculator agent.
type Answer struct {
	FinalNumber    float64 `json:"final_number"`
	Reasoning      string  `json:"reasoning"`
	ChainOfThought string  `json:"chain_of_thought"`
	Answer         string  `json:"answer"`
}

// Runner answers a question. A nil Answer with a nil error means the agent
// produced no structured result.
type Runner interface {
	Run(ctx context.Context, question string) (*Answer, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, question string) (*Answer, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, question string) (*Answer, error) {
	return f(ctx, question)
}

// Errors returned by the hosted agent client.
var (
	// ErrRunFailed is returned when the remote run ends in a terminal state
	// other than completed.
	ErrRunFailed = errors.New("agent run did not complete")
	// ErrTooManyToolRounds is returned when the agent keeps requesting tools.
	ErrTooManyToolRounds = errors.New("agent exceeded the maximum number of tool rounds")
)
