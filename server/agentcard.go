// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package server

import (
	"net/http"
	"strings"

	"trpc.group/trpc-go/a2a-calculator/protocol"
)

// CardConfig holds the static fields of the agent card.
type CardConfig struct {
	Name        string
	Description string
	Version     string
	Skill       protocol.AgentSkill
}

// DefaultCardConfig describes the count-letters calculator agent.
func DefaultCardConfig() CardConfig {
	return CardConfig{
		Name:        "Count Letters Agent",
		Description: "Counts characters in words or phrases and calculates square roots using tools.",
		Version:     "1.0.0",
		Skill: protocol.AgentSkill{
			ID:          "count-letters",
			Name:        "Count Letters",
			Description: "Counts how many times a character appears in a phrase and can take the square root of the result.",
			Tags:        []string{"calculator", "letters", "square-root"},
			Examples: []string{
				"How many times does the letter r appear in strawberry?",
				"What is the square root of the number of l's in hello world?",
			},
		},
	}
}

// withDefaults fills every empty field of c from DefaultCardConfig.
func (c CardConfig) withDefaults() CardConfig {
	d := DefaultCardConfig()
	if c.Name == "" {
		c.Name = d.Name
	}
	if c.Description == "" {
		c.Description = d.Description
	}
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Skill.ID == "" {
		c.Skill = d.Skill
	}
	return c
}

// BuildAgentCard returns the agent card as seen by the client of r. The
// interface URL is absolute and points at the JSON-RPC endpoint, using the
// forwarded scheme and host when a proxy supplied them.
func BuildAgentCard(r *http.Request, cfg CardConfig) protocol.AgentCard {
	cfg = cfg.withDefaults()
	url := externalBaseURL(r) + protocol.CountLettersA2APath
	skill := cfg.Skill
	if skill.Tags == nil {
		skill.Tags = []string{}
	}
	if skill.Examples == nil {
		skill.Examples = []string{}
	}
	return protocol.AgentCard{
		Name:               cfg.Name,
		Description:        cfg.Description,
		Version:            cfg.Version,
		URL:                url,
		ProtocolVersion:    protocol.ProtocolVersion,
		PreferredTransport: protocol.TransportJSONRPC,
		SupportedInterfaces: []protocol.AgentInterface{{
			URL:             url,
			ProtocolBinding: protocol.TransportJSONRPC,
			ProtocolVersion: protocol.ProtocolVersion,
		}},
		DefaultInputModes:  []string{protocol.ModeTextPlain},
		DefaultOutputModes: []string{protocol.ModeTextPlain},
		Capabilities:       protocol.AgentCapabilities{Streaming: false, PushNotifications: false},
		Skills:             []protocol.AgentSkill{skill},
	}
}

// externalBaseURL returns scheme://host of r as seen by the client.
func externalBaseURL(r *http.Request) string {
	scheme := firstHeaderValue(r, protocol.HeaderForwardedProto)
	if scheme == "" {
		scheme = "http"
		if r.TLS != nil {
			scheme = "https"
		}
	}
	host := firstHeaderValue(r, protocol.HeaderForwardedHost)
	if host == "" {
		host = r.Host
	}
	return strings.ToLower(scheme) + "://" + host
}

// firstHeaderValue returns the first element of a comma separated header.
func firstHeaderValue(r *http.Request, name string) string {
	v, _, _ := strings.Cut(r.Header.Get(name), ",")
	return strings.TrimSpace(v)
}
