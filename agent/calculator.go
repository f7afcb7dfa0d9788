// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"trpc.group/trpc-go/a2a-calculator/log"
	"trpc.group/trpc-go/a2a-calculator/tools"
)

const (
	defaultPollInterval   = 500 * time.Millisecond
	defaultMaxToolRounds  = 8
	defaultCleanupTimeout = 10 * time.Second

	calculatorAgentName = "CalculatorAgent"
	messageRoleAgent    = "assistant"
	runStatusIncomplete = openai.RunStatus("incomplete")
)

// CalculatorInstructions are the system instructions of the hosted agent.
const CalculatorInstructions = `You are a calculator agent with access to the following tools:
1. count_letters(character, phrase) - Counts how many times a specific character appears in a word or phrase
2. calculate_square_root(number) - Calculates the square root of a number

IMPORTANT: You MUST use these tools to solve problems. Follow these rules:
- When asked to count characters/letters in a word or phrase, ALWAYS call the count_letters tool
- When asked to calculate square roots, ALWAYS call the calculate_square_root tool
- If a question requires multiple steps (e.g., "find the square root of the count"), call the tools in sequence:
  * First, call count_letters to get the count
  * Then, call calculate_square_root with the result from count_letters
- NEVER guess or manually calculate - always use the provided tools
- In your final response, explain which tools you used and show the chain of calculations

Reply with a single JSON object and nothing else, with exactly these fields:
{"final_number": <number>, "reasoning": <string>, "chain_of_thought": <string>, "answer": <string>}`

// AssistantsClient is the subset of the go-openai client used to drive a
// hosted assistant. *openai.Client satisfies it.
type AssistantsClient interface {
	CreateAssistant(ctx context.Context, request openai.AssistantRequest) (openai.Assistant, error)
	DeleteAssistant(ctx context.Context, assistantID string) (openai.AssistantDeleteResponse, error)
	CreateThreadAndRun(ctx context.Context, request openai.CreateThreadAndRunRequest) (openai.Run, error)
	RetrieveRun(ctx context.Context, threadID string, runID string) (openai.Run, error)
	SubmitToolOutputs(ctx context.Context, threadID string, runID string,
		request openai.SubmitToolOutputsRequest) (openai.Run, error)
	ListMessage(ctx context.Context, threadID string, limit *int, order *string, after *string,
		before *string, runID *string) (openai.MessagesList, error)
	DeleteThread(ctx context.Context, threadID string) (openai.ThreadDeleteResponse, error)
}

// CalculatorOptions configures a Calculator.
type CalculatorOptions struct {
	// Client is the Assistants API client. Required.
	Client AssistantsClient
	// Model is the model deployment used for the assistant. Required.
	Model string
	// Tools are bound to the assistant. Defaults to tools.DefaultRegistry().
	Tools *tools.Registry
	// PollInterval is the delay between run status checks.
	PollInterval time.Duration
	// MaxToolRounds bounds the number of requires_action rounds per run.
	MaxToolRounds int
	// CleanupTimeout bounds the deletion of remote resources.
	CleanupTimeout time.Duration
}

// Calculator runs questions on a hosted assistant that is created for every
// question and deleted afterwards.
type Calculator struct {
	client         AssistantsClient
	model          string
	tools          *tools.Registry
	pollInterval   time.Duration
	maxToolRounds  int
	cleanupTimeout time.Duration
}

// NewCalculator builds a Calculator from opts.
func NewCalculator(opts CalculatorOptions) (*Calculator, error) {
	if opts.Client == nil {
		return nil, errors.New("assistants client is required")
	}
	if opts.Model == "" {
		return nil, errors.New("model deployment is required")
	}
	c := &Calculator{
		client:         opts.Client,
		model:          opts.Model,
		tools:          opts.Tools,
		pollInterval:   opts.PollInterval,
		maxToolRounds:  opts.MaxToolRounds,
		cleanupTimeout: opts.CleanupTimeout,
	}
	if c.tools == nil {
		c.tools = tools.DefaultRegistry()
	}
	if c.pollInterval <= 0 {
		c.pollInterval = defaultPollInterval
	}
	if c.maxToolRounds <= 0 {
		c.maxToolRounds = defaultMaxToolRounds
	}
	if c.cleanupTimeout <= 0 {
		c.cleanupTimeout = defaultCleanupTimeout
	}
	return c, nil
}

// Run implements Runner. The remote assistant and thread are deleted on every
// exit path, including cancellation of ctx.
func (c *Calculator) Run(ctx context.Context, question string) (*Answer, error) {
	name := calculatorAgentName
	instructions := CalculatorInstructions
	assistant, err := c.client.CreateAssistant(ctx, openai.AssistantRequest{
		Model:        c.model,
		Name:         &name,
		Instructions: &instructions,
		Tools:        c.assistantTools(),
	})
	if err != nil {
		return nil, fmt.Errorf("create assistant: %w", err)
	}
	log.Debugf("Created assistant %s", assistant.ID)
	defer c.release(ctx, "assistant "+assistant.ID, func(ctx context.Context) error {
		_, err := c.client.DeleteAssistant(ctx, assistant.ID)
		return err
	})

	run, err := c.client.CreateThreadAndRun(ctx, openai.CreateThreadAndRunRequest{
		RunRequest: openai.RunRequest{AssistantID: assistant.ID},
		Thread: openai.ThreadRequest{
			Messages: []openai.ThreadMessage{{Role: openai.ThreadMessageRoleUser, Content: question}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("start run: %w", err)
	}
	if run.ThreadID != "" {
		defer c.release(ctx, "thread "+run.ThreadID, func(ctx context.Context) error {
			_, err := c.client.DeleteThread(ctx, run.ThreadID)
			return err
		})
	}

	run, err = c.await(ctx, run)
	if err != nil {
		return nil, err
	}
	reply, err := c.reply(ctx, run)
	if err != nil {
		return nil, err
	}
	answer, err := parseAnswer(reply)
	if err != nil {
		log.Warnf("Run %s finished without a structured answer: %v", run.ID, err)
		return nil, nil
	}
	return answer, nil
}

func (c *Calculator) assistantTools() []openai.AssistantTool {
	defs := c.tools.Definitions()
	out := make([]openai.AssistantTool, 0, len(defs))
	for _, def := range defs {
		out = append(out, openai.AssistantTool{
			Type: openai.AssistantToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		})
	}
	return out
}

// await polls the run until it completes, answering tool calls on the way.
func (c *Calculator) await(ctx context.Context, run openai.Run) (openai.Run, error) {
	timer := time.NewTimer(c.pollInterval)
	defer timer.Stop()
	rounds := 0
	for {
		var err error
		switch run.Status {
		case openai.RunStatusCompleted:
			return run, nil
		case openai.RunStatusRequiresAction:
			rounds++
			if rounds > c.maxToolRounds {
				return run, ErrTooManyToolRounds
			}
			run, err = c.client.SubmitToolOutputs(ctx, run.ThreadID, run.ID, openai.SubmitToolOutputsRequest{
				ToolOutputs: c.callTools(ctx, run),
			})
			if err != nil {
				return run, fmt.Errorf("submit tool outputs: %w", err)
			}
			continue
		case openai.RunStatusFailed, openai.RunStatusCancelled, openai.RunStatusCancelling,
			openai.RunStatusExpired, runStatusIncomplete:
			return run, runError(run)
		}

		timer.Reset(c.pollInterval)
		select {
		case <-ctx.Done():
			return run, ctx.Err()
		case <-timer.C:
		}
		run, err = c.client.RetrieveRun(ctx, run.ThreadID, run.ID)
		if err != nil {
			return run, fmt.Errorf("retrieve run: %w", err)
		}
	}
}

// callTools runs every tool call requested by the run. Tool failures are
// reported back to the model instead of aborting the run.
func (c *Calculator) callTools(ctx context.Context, run openai.Run) []openai.ToolOutput {
	if run.RequiredAction == nil || run.RequiredAction.SubmitToolOutputs == nil {
		return nil
	}
	calls := run.RequiredAction.SubmitToolOutputs.ToolCalls
	outputs := make([]openai.ToolOutput, 0, len(calls))
	for _, call := range calls {
		out, err := c.tools.Call(ctx, call.Function.Name, call.Function.Arguments)
		if err != nil {
			log.Warnf("Tool %s failed for run %s: %v", call.Function.Name, run.ID, err)
			encoded, _ := json.Marshal(map[string]string{"error": err.Error()})
			out = string(encoded)
		} else {
			log.Debugf("Tool %s(%s) = %s", call.Function.Name, call.Function.Arguments, out)
		}
		outputs = append(outputs, openai.ToolOutput{ToolCallID: call.ID, Output: out})
	}
	return outputs
}

// reply returns the text of the newest assistant message of the run.
func (c *Calculator) reply(ctx context.Context, run openai.Run) (string, error) {
	limit := 10
	order := "desc"
	runID := run.ID
	list, err := c.client.ListMessage(ctx, run.ThreadID, &limit, &order, nil, nil, &runID)
	if err != nil {
		return "", fmt.Errorf("list messages: %w", err)
	}
	for _, msg := range list.Messages {
		if string(msg.Role) != messageRoleAgent {
			continue
		}
		var sb strings.Builder
		for _, content := range msg.Content {
			if content.Text != nil {
				sb.WriteString(content.Text.Value)
			}
		}
		return sb.String(), nil
	}
	return "", nil
}

// release deletes a remote resource with a context that survives the
// cancellation of the request.
func (c *Calculator) release(ctx context.Context, what string, del func(context.Context) error) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cleanupTimeout)
	defer cancel()
	if err := del(cleanupCtx); err != nil {
		log.Warnf("Failed to delete %s: %v", what, err)
		return
	}
	log.Debugf("Deleted %s", what)
}

func runError(run openai.Run) error {
	if run.LastError != nil {
		return fmt.Errorf("%w: run %s %s: %s: %s", ErrRunFailed, run.ID, run.Status,
			run.LastError.Code, run.LastError.Message)
	}
	return fmt.Errorf("%w: run %s %s", ErrRunFailed, run.ID, run.Status)
}
