// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package jsonrpc

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Request represents a JSON-RPC request object.
type Request struct {
	Message
	// Method is a String containing the name of the method to be invoked.
	Method string `json:"method"`
	// Params is a Structured value that holds the parameter values to be used
	// during the invocation of the method. This member MAY be omitted.
	// It's stored as raw JSON to be decoded by the method handler.
	Params json.RawMessage `json:"params,omitempty"`
}

// NewRequest creates a new JSON-RPC request with the given method and a
// string id. An empty id is replaced by a generated UUID.
func NewRequest(method string, id string) *Request {
	if id == "" {
		id = uuid.NewString()
	}
	raw, _ := json.Marshal(id)
	return &Request{
		Message: Message{
			ID:      raw,
			JSONRPC: Version,
		},
		Method: method,
	}
}
