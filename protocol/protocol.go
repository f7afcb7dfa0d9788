// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

// Package protocol defines constants and shared types for the A2A protocol
// as served by the calculator agent.
package protocol

// A2A RPC method names. The calculator endpoint does not route on the method,
// these are the names clients send.
const (
	MethodMessageSend = "message/send"
	// MethodSendMessage is the name used by the 0.3+ JSON-RPC binding.
	MethodSendMessage = "SendMessage"
)

// HTTP endpoint paths served by the calculator agent.
const (
	// AgentsPrefix groups every agent route.
	AgentsPrefix = "/agents"
	// CountLettersPath is the plain REST endpoint.
	CountLettersPath = AgentsPrefix + "/count-letters"
	// CountLettersA2APath is the JSON-RPC endpoint advertised in the agent card.
	CountLettersA2APath = AgentsPrefix + "/count-letters-a2a"
	// AgentCardPath is the well-known agent card location, relative to the agent.
	AgentCardPath = "/.well-known/agent-card.json"
	// CountLettersAgentCardPath is the absolute agent card path.
	CountLettersAgentCardPath = CountLettersPath + AgentCardPath
	// HelloWorldPath is the trivial greeting endpoint.
	HelloWorldPath = AgentsPrefix + "/hello-world"
)

// Agent card constants.
const (
	// ProtocolVersion is the A2A protocol version advertised by the card.
	ProtocolVersion = "0.3.0"
	// TransportJSONRPC is the JSON-RPC protocol binding name.
	TransportJSONRPC = "JSONRPC"
	// ModeTextPlain is the only input and output mode of the agent.
	ModeTextPlain = "text/plain"
)

// Forwarded headers consulted when building absolute URLs.
const (
	HeaderForwardedProto = "X-Forwarded-Proto"
	HeaderForwardedHost  = "X-Forwarded-Host"
)
