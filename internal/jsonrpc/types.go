// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

// Package jsonrpc defines types and helpers for JSON-RPC 2.0 communication,
// adhering to the specification at https://www.jsonrpc.org/specification.
package jsonrpc

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Version is the JSON-RPC version.
const Version = "2.0"

// Standard JSON-RPC 2.0 error codes.
const (
	// CodeParseError indicates invalid JSON was received by the server.
	// An error occurred on the server while parsing the JSON text.
	CodeParseError = -32700
	// CodeInvalidRequest indicates the JSON sent is not a valid Request object.
	CodeInvalidRequest = -32600
	// CodeMethodNotFound indicates the method does not exist / is not available.
	CodeMethodNotFound = -32601
	// CodeInvalidParams indicates invalid method parameter(s).
	CodeInvalidParams = -32602
	// CodeInternalError indicates an internal JSON-RPC error.
	CodeInternalError = -32603
	// -32000 to -32099 are reserved for implementation-defined server-errors.
)

// nullID is the wire form of an absent or unreadable request id.
var nullID = json.RawMessage("null")

// Message is the base structure embedding common fields for JSON-RPC
// requests and responses.
type Message struct {
	// JSONRPC specifies the version of the JSON-RPC protocol. MUST be "2.0".
	JSONRPC string `json:"jsonrpc"`
	// ID is an identifier established by the Client that MUST contain a String,
	// Number, or NULL value if included. It is kept as raw JSON so that a
	// response echoes it exactly as received: "7" stays a string, 7 stays a
	// number and large integers keep every digit.
	ID json.RawMessage `json:"id"`
}

// ValidID reports whether id is an acceptable JSON-RPC id: a string, a
// number or null. An empty id (member absent) is also accepted.
func ValidID(id json.RawMessage) bool {
	trimmed := bytes.TrimSpace(id)
	if len(trimmed) == 0 {
		return true
	}
	switch trimmed[0] {
	case '"', 'n':
		return true
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return true
	default:
		return false
	}
}

// IDOrNull returns id, or JSON null when id is empty.
func IDOrNull(id json.RawMessage) json.RawMessage {
	if len(bytes.TrimSpace(id)) == 0 {
		return nullID
	}
	return id
}

// Error represents a JSON-RPC error object, included in responses when
// an error occurs.
type Error struct {
	// Code is a Number that indicates the error type that occurred.
	// This MUST be an integer.
	Code int `json:"code"`
	// Message is a String providing a short description of the error.
	// The message SHOULD be limited to a concise single sentence.
	Message string `json:"message"`
	// Data is a Primitive or Structured value that contains additional
	// information about the error. This may be omitted.
	Data interface{} `json:"data,omitempty"`
}

// Error implements the standard Go error interface for Error, providing
// a basic string representation of the error.
func (e *Error) Error() string {
	if e == nil {
		return "<nil jsonrpc error>"
	}
	if e.Data != nil {
		return fmt.Sprintf("jsonrpc error %d: %s (%v)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

// --- Standard Error Constructors ---

// ErrParseError creates a standard Parse Error (-32700).
// Use this when the server fails to parse the JSON request.
func ErrParseError(data interface{}) *Error {
	return &Error{Code: CodeParseError, Message: "Parse error", Data: data}
}

// ErrInvalidRequest creates a standard Invalid Request error (-32600).
// Use this when the JSON is valid, but the request object does not have the
// expected shape (e.g., mistyped "id" or a missing "params.message").
func ErrInvalidRequest(data interface{}) *Error {
	return &Error{Code: CodeInvalidRequest, Message: "Invalid Request", Data: data}
}

// ErrMethodNotFound creates a standard Method Not Found error (-32601).
func ErrMethodNotFound(data interface{}) *Error {
	return &Error{Code: CodeMethodNotFound, Message: "Method not found", Data: data}
}

// ErrInvalidParams creates a standard Invalid Params error (-32602).
// Use this when the request is well formed but its parameters cannot be
// used, e.g. a message without any text part.
func ErrInvalidParams(data interface{}) *Error {
	return &Error{Code: CodeInvalidParams, Message: "Invalid params", Data: data}
}

// ErrInternalError creates a standard Internal Error (-32603).
// Use this for generic internal server errors not covered by other codes.
func ErrInternalError(data interface{}) *Error {
	return &Error{Code: CodeInternalError, Message: "Internal error", Data: data}
}
