// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package protocol

import (
	"github.com/google/uuid"
)

// Kind constants define the possible kinds of the struct.
const (
	// KindMessage is the kind of the message.
	KindMessage = "message"
	// KindText is the kind of a text part.
	KindText = "text"
	// KindData is the kind of a structured data part.
	KindData = "data"
	// KindFile is the kind of a file part.
	KindFile = "file"
)

// MessageRole indicates the originator of a message.
type MessageRole string

// MessageRole constants define the roles used by the calculator agent.
const (
	// MessageRoleUser is the role of a message originated from the user/client.
	MessageRoleUser MessageRole = "user"
	// MessageRoleAgent is the role of every reply. Downstream consumers match
	// the capitalised literal case-sensitively.
	MessageRoleAgent MessageRole = "Agent"
)

// Part is a segment of a message. Only text parts are interpreted; parts of
// any other kind are carried through untouched.
type Part struct {
	// Kind is the type of the part ("text", "data", "file", ...).
	Kind string `json:"kind"`
	// Text is the text content of a text part.
	Text string `json:"text,omitempty"`
	// Data is the payload of a data part.
	Data interface{} `json:"data,omitempty"`
	// File is the payload of a file part.
	File interface{} `json:"file,omitempty"`
	// Metadata is the optional metadata.
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// NewTextPart creates a new text Part.
func NewTextPart(text string) Part {
	return Part{Kind: KindText, Text: text}
}

// Message represents a single exchange between a user and an agent.
type Message struct {
	// Kind is the type discriminator for this message (always "message").
	Kind string `json:"kind"`
	// MessageID is the opaque identifier of this message.
	MessageID string `json:"messageId"`
	// Role is the sender of the message.
	Role MessageRole `json:"role"`
	// Parts is the ordered content of the message.
	Parts []Part `json:"parts"`
	// ContextID is the optional context identifier for the message.
	ContextID string `json:"contextId,omitempty"`
	// Metadata is the optional metadata.
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// NewMessage creates a new Message with a generated id.
func NewMessage(role MessageRole, parts []Part) Message {
	return Message{
		Kind:      KindMessage,
		MessageID: GenerateMessageID(),
		Role:      role,
		Parts:     parts,
	}
}

// NewAgentMessage wraps text into a single-part reply from the agent.
func NewAgentMessage(text string) Message {
	return NewMessage(MessageRoleAgent, []Part{NewTextPart(text)})
}

// FirstText returns the text of the first part whose kind is "text".
// The boolean is false when the message has no such part.
func (m Message) FirstText() (string, bool) {
	for _, p := range m.Parts {
		if p.Kind == KindText {
			return p.Text, true
		}
	}
	return "", false
}

// SendMessageParams defines the parameters of a message/send request.
type SendMessageParams struct {
	// Message is the message being sent to the agent.
	Message Message `json:"message"`
	// Metadata is the optional request metadata.
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// GenerateMessageID generates a new unique message ID.
func GenerateMessageID() string {
	return uuid.New().String()
}

// AgentInterface declares a URL together with its protocol binding.
type AgentInterface struct {
	// URL is where this interface is reachable.
	URL string `json:"url"`
	// ProtocolBinding is the transport served at URL, e.g. "JSONRPC".
	ProtocolBinding string `json:"protocolBinding"`
	// ProtocolVersion is the A2A version exposed at URL.
	ProtocolVersion string `json:"protocolVersion"`
}

// AgentCapabilities defines the optional capabilities supported by an agent.
type AgentCapabilities struct {
	// Streaming reports whether the agent streams responses.
	Streaming bool `json:"streaming"`
	// PushNotifications reports whether the agent can push notifications.
	PushNotifications bool `json:"pushNotifications"`
}

// AgentSkill describes a specific capability of the agent.
type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Examples    []string `json:"examples"`
}

// AgentCard is the discovery document describing an A2A agent.
type AgentCard struct {
	Name                string            `json:"name"`
	Description         string            `json:"description"`
	Version             string            `json:"version"`
	URL                 string            `json:"url"`
	ProtocolVersion     string            `json:"protocolVersion"`
	PreferredTransport  string            `json:"preferredTransport"`
	SupportedInterfaces []AgentInterface  `json:"supportedInterfaces"`
	DefaultInputModes   []string          `json:"defaultInputModes"`
	DefaultOutputModes  []string          `json:"defaultOutputModes"`
	Capabilities        AgentCapabilities `json:"capabilities"`
	Skills              []AgentSkill      `json:"skills"`
}

// InterfaceURL returns the URL of the first interface bound to the given
// transport, falling back to the card URL.
func (c AgentCard) InterfaceURL(transport string) string {
	for _, iface := range c.SupportedInterfaces {
		if iface.ProtocolBinding == transport && iface.URL != "" {
			return iface.URL
		}
	}
	return c.URL
}
