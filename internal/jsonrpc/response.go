// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package jsonrpc

import "encoding/json"

// Response represents a JSON-RPC response object.
// Either Result or Error MUST be included, but not both.
type Response struct {
	Message
	// Result is REQUIRED on success.
	// This member MUST NOT exist if there was an error invoking the method.
	Result interface{} `json:"result,omitempty"`
	// Error is REQUIRED on error.
	// This member MUST NOT exist if there was no error triggered during invocation.
	Error *Error `json:"error,omitempty"`
}

// RawResponse is a JSON-RPC response that keeps the result as raw JSON, so
// callers can decode it into the type they expect.
type RawResponse struct {
	Message
	Result json.RawMessage `json:"result,omitempty"`
	Error  *Error          `json:"error,omitempty"`
}

// NewResponse creates a new JSON-RPC response with a result.
func NewResponse(id json.RawMessage, result interface{}) *Response {
	return &Response{
		Message: Message{JSONRPC: Version, ID: IDOrNull(id)},
		Result:  result,
	}
}

// NewErrorResponse creates a new JSON-RPC response with an error.
func NewErrorResponse(id json.RawMessage, err *Error) *Response {
	return &Response{
		Message: Message{JSONRPC: Version, ID: IDOrNull(id)},
		Error:   err,
	}
}
