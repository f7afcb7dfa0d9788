// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package jsonrpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse_EchoesID(t *testing.T) {
	tests := []struct {
		name       string
		id         json.RawMessage
		expectJSON string
	}{
		{
			name:       "integer id stays integer",
			id:         json.RawMessage(`7`),
			expectJSON: `{"jsonrpc":"2.0","id":7,"result":"ok"}`,
		},
		{
			name:       "string id stays string",
			id:         json.RawMessage(`"7"`),
			expectJSON: `{"jsonrpc":"2.0","id":"7","result":"ok"}`,
		},
		{
			name:       "large integer keeps every digit",
			id:         json.RawMessage(`9007199254740993`),
			expectJSON: `{"jsonrpc":"2.0","id":9007199254740993,"result":"ok"}`,
		},
		{
			name:       "missing id becomes null",
			id:         nil,
			expectJSON: `{"jsonrpc":"2.0","id":null,"result":"ok"}`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(NewResponse(tc.id, "ok"))
			require.NoError(t, err)
			assert.Equal(t, tc.expectJSON, string(data))
		})
	}
}

func TestErrorResponse(t *testing.T) {
	resp := NewErrorResponse(nil, ErrParseError("unexpected end of JSON input"))
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"jsonrpc":"2.0","id":null,"error":{"code":-32700,"message":"Parse error","data":"unexpected end of JSON input"}}`,
		string(data))
	assert.NotContains(t, string(data), "result")
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		err     *Error
		code    int
		message string
	}{
		{ErrParseError(nil), CodeParseError, "Parse error"},
		{ErrInvalidRequest(nil), CodeInvalidRequest, "Invalid Request"},
		{ErrMethodNotFound(nil), CodeMethodNotFound, "Method not found"},
		{ErrInvalidParams(nil), CodeInvalidParams, "Invalid params"},
		{ErrInternalError(nil), CodeInternalError, "Internal error"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.code, tc.err.Code)
		assert.Equal(t, tc.message, tc.err.Message)
	}
	assert.Equal(t, -32700, CodeParseError)
	assert.Equal(t, -32600, CodeInvalidRequest)
	assert.Equal(t, -32602, CodeInvalidParams)
	assert.Equal(t, -32603, CodeInternalError)
}

func TestError_Error(t *testing.T) {
	var nilErr *Error
	assert.Equal(t, "<nil jsonrpc error>", nilErr.Error())
	assert.Equal(t, "jsonrpc error -32602: Invalid params", ErrInvalidParams(nil).Error())
	assert.Equal(t, "jsonrpc error -32603: Internal error (boom)", ErrInternalError("boom").Error())
}

func TestValidID(t *testing.T) {
	valid := []string{``, `null`, `"abc"`, `7`, `-1`, `1.5`, ` 42 `}
	for _, id := range valid {
		assert.True(t, ValidID(json.RawMessage(id)), "id %q should be valid", id)
	}
	invalid := []string{`{}`, `[1]`, `true`, `false`}
	for _, id := range invalid {
		assert.False(t, ValidID(json.RawMessage(id)), "id %q should be invalid", id)
	}
}

func TestNewRequest(t *testing.T) {
	req := NewRequest("message/send", "req-1")
	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":"req-1","method":"message/send"}`, string(data))

	generated := NewRequest("message/send", "")
	var id string
	require.NoError(t, json.Unmarshal(generated.ID, &id))
	assert.NotEmpty(t, id)
}
