// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"trpc.group/trpc-go/a2a-calculator/agent"
	"trpc.group/trpc-go/a2a-calculator/auth"
	"trpc.group/trpc-go/a2a-calculator/internal/jsonrpc"
	"trpc.group/trpc-go/a2a-calculator/log"
	"trpc.group/trpc-go/a2a-calculator/protocol"
)

// Endpoint labels used in logs and metrics.
const (
	endpointREST = "rest"
	endpointA2A  = "a2a"
)

type messageBody struct {
	Message string `json:"message"`
}

type statusBody struct {
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("Failed to write JSON response: %v", err)
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, messageBody{Message: "Hello World"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusBody{Status: "ok"})
}

func (s *Server) handleHelloWorld(w http.ResponseWriter, r *http.Request) {
	if s.greeter == nil {
		writeJSON(w, http.StatusServiceUnavailable, protocol.ErrorResponse{Error: "hello agent is not configured"})
		return
	}
	msg, err := s.greeter.Hello(r.Context())
	if err != nil {
		log.Errorf("Hello agent failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, protocol.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: msg})
}

// handleAgentCard serves the agent card, built for the caller's view of the
// server.
func (s *Server) handleAgentCard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, BuildAgentCard(r, s.card))
}

// handleCountLetters is the plain REST endpoint.
func (s *Server) handleCountLetters(w http.ResponseWriter, r *http.Request) {
	var req protocol.CountLettersRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, protocol.ErrorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	log.Infof("Received count-letters request (request %s, user %s)",
		middleware.GetReqID(r.Context()), callerID(r.Context()))

	answer, err := s.invoke(r.Context(), endpointREST, req.Question)
	if err != nil {
		log.Errorf("Agent run failed (request %s): %v", middleware.GetReqID(r.Context()), err)
		writeJSON(w, http.StatusInternalServerError, protocol.ErrorResponse{Error: err.Error()})
		return
	}
	var resp protocol.CountLettersResponse
	if answer != nil {
		resp = protocol.CountLettersResponse{
			FinalNumber:    answer.FinalNumber,
			Reasoning:      answer.Reasoning,
			ChainOfThought: answer.ChainOfThought,
			Answer:         answer.Answer,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleCountLettersA2A is the A2A JSON-RPC endpoint. Any method name is
// accepted; the first text part of params.message is the question.
func (s *Server) handleCountLettersA2A(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		writeJSONRPCError(w, nil, jsonrpc.ErrParseError(fmt.Sprintf("failed to read request body: %v", err)))
		return
	}
	req, rpcErr := parseSendMessageRequest(body)
	if rpcErr != nil {
		log.Warnf("Rejected JSON-RPC request (ID: %s): %v", req.ID, rpcErr)
		writeJSONRPCError(w, req.ID, rpcErr)
		return
	}
	log.Infof("Received JSON-RPC request (ID: %s, Method: %s, MessageID: %s, User: %s)",
		req.ID, req.Method, req.Params.Message.MessageID, callerID(r.Context()))

	question, ok := req.Params.Message.FirstText()
	if !ok {
		writeJSONRPCError(w, req.ID, jsonrpc.ErrInvalidParams("message has no text part"))
		return
	}
	answer, err := s.invoke(r.Context(), endpointA2A, question)
	if err != nil {
		log.Errorf("Agent run failed (ID: %s): %v", req.ID, err)
		writeJSONRPCError(w, req.ID, jsonrpc.ErrInternalError(err.Error()))
		return
	}
	writeJSONRPCResponse(w, req.ID, composeReply(answer))
}

// invoke runs the agent, converting a panic into an error.
func (s *Server) invoke(ctx context.Context, endpoint, question string) (answer *agent.Answer, err error) {
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			answer, err = nil, fmt.Errorf("agent panicked: %v", p)
		}
		if s.metrics != nil {
			s.metrics.observeRun(endpoint, answer, err, time.Since(start))
		}
	}()
	return s.runner.Run(ctx, question)
}

// callerID names the authenticated user of ctx, or "anonymous" when the
// endpoint is not protected.
func callerID(ctx context.Context) string {
	if user, ok := auth.UserFromContext(ctx); ok && user.ID != "" {
		return user.ID
	}
	return "anonymous"
}
