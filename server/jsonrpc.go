// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"trpc.group/trpc-go/a2a-calculator/internal/jsonrpc"
	"trpc.group/trpc-go/a2a-calculator/log"
	"trpc.group/trpc-go/a2a-calculator/protocol"
)

// sendMessageRequest is a JSON-RPC request carrying A2A send-message params.
type sendMessageRequest struct {
	// ID is the raw request id, echoed unchanged in the response.
	ID      json.RawMessage
	JSONRPC string
	Method  string
	Params  protocol.SendMessageParams
}

// parseSendMessageRequest validates body in two stages. Bodies that are not
// JSON fail with a parse error; JSON of the wrong shape fails with an invalid
// request error. The returned request carries the id whenever it could be
// read, also on failure. The method name is not checked.
func parseSendMessageRequest(body []byte) (sendMessageRequest, *jsonrpc.Error) {
	var req sendMessageRequest
	if !json.Valid(body) {
		return req, jsonrpc.ErrParseError("request body is not valid JSON")
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil || envelope == nil {
		return req, jsonrpc.ErrInvalidRequest("request must be a JSON object")
	}

	id := envelope["id"]
	if !jsonrpc.ValidID(id) {
		return req, jsonrpc.ErrInvalidRequest("id must be a string, a number or null")
	}
	req.ID = id

	if raw, ok := envelope["jsonrpc"]; ok {
		if err := json.Unmarshal(raw, &req.JSONRPC); err != nil {
			return req, jsonrpc.ErrInvalidRequest("jsonrpc must be a string")
		}
	}
	if req.JSONRPC != jsonrpc.Version {
		log.Warnf("JSON-RPC request (ID: %s) has version %q, expected %q", id, req.JSONRPC, jsonrpc.Version)
	}
	if raw, ok := envelope["method"]; ok {
		if err := json.Unmarshal(raw, &req.Method); err != nil {
			return req, jsonrpc.ErrInvalidRequest("method must be a string")
		}
	}

	params, ok := envelope["params"]
	if !ok || isNull(params) {
		return req, jsonrpc.ErrInvalidRequest("params is required")
	}
	var shape struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(params, &shape); err != nil {
		return req, jsonrpc.ErrInvalidRequest("params must be an object")
	}
	if len(shape.Message) == 0 || isNull(shape.Message) {
		return req, jsonrpc.ErrInvalidRequest("params.message is required")
	}
	if err := json.Unmarshal(params, &req.Params); err != nil {
		return req, jsonrpc.ErrInvalidRequest(fmt.Sprintf("invalid params.message: %v", err))
	}
	return req, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// writeJSONRPCResponse encodes and writes a JSON-RPC success response.
func writeJSONRPCResponse(w http.ResponseWriter, id json.RawMessage, result interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(jsonrpc.NewResponse(id, result)); err != nil {
		log.Errorf("Failed to write JSON-RPC success response (ID: %s): %v", id, err)
	}
}

// writeJSONRPCError encodes and writes a JSON-RPC error response with the
// HTTP status matching its code.
func writeJSONRPCError(w http.ResponseWriter, id json.RawMessage, err *jsonrpc.Error) {
	if err == nil {
		err = jsonrpc.ErrInternalError("writeJSONRPCError called with nil error")
		log.Errorf("Programming ERROR: writeJSONRPCError called with nil error (Request ID: %s)", id)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(jsonRPCStatus(err.Code))
	if encodeErr := json.NewEncoder(w).Encode(jsonrpc.NewErrorResponse(id, err)); encodeErr != nil {
		log.Errorf("Failed to write JSON-RPC error response (ID: %s, Code: %d): %v", id, err.Code, encodeErr)
	}
}

// jsonRPCStatus maps a JSON-RPC error code to an HTTP status: client input
// errors are 400, everything else is a server fault.
func jsonRPCStatus(code int) int {
	switch code {
	case jsonrpc.CodeParseError, jsonrpc.CodeInvalidRequest, jsonrpc.CodeInvalidParams:
		return http.StatusBadRequest
	case jsonrpc.CodeMethodNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
