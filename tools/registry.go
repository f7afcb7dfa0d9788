// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"
)

// ErrUnknownTool is returned by Registry.Call for an unregistered tool name.
var ErrUnknownTool = errors.New("unknown tool")

// Definition describes a tool to the hosted agent.
type Definition struct {
	Name        string
	Description string
	// Parameters is the JSON schema of the tool arguments.
	Parameters *jsonschema.Schema
}

type handler func(ctx context.Context, args json.RawMessage) (interface{}, error)

type entry struct {
	def Definition
	run handler
}

// Registry is a named, ordered set of tools. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	order []string
	tools map[string]entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]entry)}
}

// Register adds a typed tool. The argument schema is reflected from In.
// Registering an existing name replaces the previous tool.
func Register[In any, Out any](r *Registry, name, description string, fn func(context.Context, In) (Out, error)) {
	def := Definition{
		Name:        name,
		Description: description,
		Parameters:  schemaFor[In](),
	}
	run := func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
		var in In
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &in); err != nil {
				return nil, fmt.Errorf("decode %s arguments: %w", name, err)
			}
		}
		return fn(ctx, in)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tools[name]; !ok {
		r.order = append(r.order, name)
	}
	r.tools[name] = entry{def: def, run: run}
}

// schemaFor reflects an inline object schema without $schema, $id or $ref.
func schemaFor[T any]() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	schema := reflector.Reflect(new(T))
	schema.Version = ""
	schema.ID = ""
	return schema
}

// Definitions returns the tool definitions in registration order.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].def)
	}
	return defs
}

// Call runs the named tool with JSON encoded arguments and returns the JSON
// encoded result.
func (r *Registry) Call(ctx context.Context, name string, arguments string) (string, error) {
	r.mu.RLock()
	e, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	out, err := e.run(ctx, json.RawMessage(arguments))
	if err != nil {
		return "", err
	}
	encoded, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode %s result: %w", name, err)
	}
	return string(encoded), nil
}

// DefaultRegistry returns the calculator tools: count_letters and
// calculate_square_root.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	Register(r, NameCountLetters,
		"Count the number of specified characters in a specific word or phrase",
		func(_ context.Context, in CountLettersArgs) (CountLettersResult, error) {
			return CountLettersResult{Count: CountLetters(in.Character, in.Phrase)}, nil
		})
	Register(r, NameCalculateSquareRoot,
		"Calculate the square root of the provided number and return it.",
		func(_ context.Context, in SquareRootArgs) (SquareRootResult, error) {
			root, err := CalculateSquareRoot(in.Number)
			if err != nil {
				return SquareRootResult{}, err
			}
			return SquareRootResult{SquareRoot: root}, nil
		})
	return r
}
