// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/a2a-calculator/internal/jsonrpc"
	"trpc.group/trpc-go/a2a-calculator/protocol"
)

func TestParseSendMessageRequest(t *testing.T) {
	req, err := parseSendMessageRequest([]byte(`{"jsonrpc":"2.0","method":"SendMessage","id":"abc",` +
		`"params":{"message":{"kind":"message","role":"user","messageId":"m1",` +
		`"parts":[{"kind":"file","file":{"uri":"x"}},{"kind":"text","text":"hi"}]},"metadata":{"k":"v"}}}`))
	require.Nil(t, err)
	assert.Equal(t, `"abc"`, string(req.ID))
	assert.Equal(t, "2.0", req.JSONRPC)
	assert.Equal(t, protocol.MethodSendMessage, req.Method)
	assert.Equal(t, "m1", req.Params.Message.MessageID)
	assert.Equal(t, "v", req.Params.Metadata["k"])
	require.Len(t, req.Params.Message.Parts, 2)
	text, ok := req.Params.Message.FirstText()
	assert.True(t, ok)
	assert.Equal(t, "hi", text)
}

func TestParseSendMessageRequest_Stages(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantID   string
	}{
		{"truncated", `{"id":1,`, jsonrpc.CodeParseError, ""},
		{"garbage", `hello`, jsonrpc.CodeParseError, ""},
		{"string", `"hello"`, jsonrpc.CodeInvalidRequest, ""},
		{"null", `null`, jsonrpc.CodeInvalidRequest, ""},
		{"bool id", `{"id":true,"params":{"message":{}}}`, jsonrpc.CodeInvalidRequest, ""},
		{"jsonrpc number", `{"jsonrpc":2,"id":1,"params":{"message":{}}}`, jsonrpc.CodeInvalidRequest, "1"},
		{"null params", `{"id":1,"params":null}`, jsonrpc.CodeInvalidRequest, "1"},
		{"params array", `{"id":1,"params":[{"message":{}}]}`, jsonrpc.CodeInvalidRequest, "1"},
		{"null message", `{"id":1,"params":{"message":null}}`, jsonrpc.CodeInvalidRequest, "1"},
		{"message string", `{"id":1,"params":{"message":"what is 2+2"}}`, jsonrpc.CodeInvalidRequest, "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := parseSendMessageRequest([]byte(tt.body))
			require.NotNil(t, err)
			assert.Equal(t, tt.wantCode, err.Code)
			assert.Equal(t, tt.wantID, string(req.ID))
		})
	}
}

func TestParseSendMessageRequest_Permissive(t *testing.T) {
	req, err := parseSendMessageRequest([]byte(`{"params":{"message":{"parts":[]}}}`))
	require.Nil(t, err, "missing jsonrpc, method and id are tolerated")
	assert.Empty(t, req.ID)
	assert.Empty(t, req.Params.Message.Parts)
}

func TestJSONRPCStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, jsonRPCStatus(jsonrpc.CodeParseError))
	assert.Equal(t, http.StatusBadRequest, jsonRPCStatus(jsonrpc.CodeInvalidRequest))
	assert.Equal(t, http.StatusBadRequest, jsonRPCStatus(jsonrpc.CodeInvalidParams))
	assert.Equal(t, http.StatusNotFound, jsonRPCStatus(jsonrpc.CodeMethodNotFound))
	assert.Equal(t, http.StatusInternalServerError, jsonRPCStatus(jsonrpc.CodeInternalError))
	assert.Equal(t, http.StatusInternalServerError, jsonRPCStatus(-32000))
}
