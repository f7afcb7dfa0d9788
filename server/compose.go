// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package server

import (
	"strconv"
	"strings"

	"trpc.group/trpc-go/a2a-calculator/agent"
	"trpc.group/trpc-go/a2a-calculator/protocol"
)

// FallbackAnswer is the reply text when the agent produced no structured answer.
const FallbackAnswer = "I couldn't process the question."

// ComposeAnswerText renders answer as labelled lines in a fixed order, or
// FallbackAnswer alone when answer is nil.
func ComposeAnswerText(answer *agent.Answer) string {
	if answer == nil {
		return FallbackAnswer
	}
	return strings.Join([]string{
		"Answer: " + answer.Answer,
		"Final Number: " + strconv.FormatFloat(answer.FinalNumber, 'f', -1, 64),
		"Reasoning: " + answer.Reasoning,
		"Chain of Thought: " + answer.ChainOfThought,
	}, "\n")
}

// composeReply builds the A2A message returned for answer.
func composeReply(answer *agent.Answer) protocol.Message {
	return protocol.NewAgentMessage(ComposeAnswerText(answer))
}
