// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

var errNotStructured = errors.New("reply is not a structured answer")

var answerSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	reflector := &invopop.Reflector{Anonymous: true, ExpandedStruct: true, DoNotReference: true}
	doc, err := json.Marshal(reflector.Reflect(new(Answer)))
	if err != nil {
		return nil, fmt.Errorf("marshal answer schema: %w", err)
	}
	var schemaDoc any
	if err := json.Unmarshal(doc, &schemaDoc); err != nil {
		return nil, fmt.Errorf("unmarshal answer schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("answer.json", schemaDoc); err != nil {
		return nil, fmt.Errorf("add answer schema: %w", err)
	}
	return c.Compile("answer.json")
})

// parseAnswer decodes the final assistant text into an Answer. The text may
// be wrapped in a markdown code fence. Unknown fields are rejected.
func parseAnswer(text string) (*Answer, error) {
	body := stripFence(text)
	if body == "" {
		return nil, errNotStructured
	}
	var payload any
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errNotStructured, err)
	}
	schema, err := answerSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errNotStructured, err)
	}
	var answer Answer
	if err := json.Unmarshal([]byte(body), &answer); err != nil {
		return nil, fmt.Errorf("%w: %v", errNotStructured, err)
	}
	return &answer, nil
}

func stripFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// Drop the info string, e.g. "json".
		s = s[nl+1:]
	} else {
		s = ""
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
