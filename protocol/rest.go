// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package protocol

// CountLettersRequest is the body of the REST count-letters endpoint.
type CountLettersRequest struct {
	Question string `json:"question"`
}

// CountLettersResponse is the reply of the REST count-letters endpoint. Every
// field is zero when the agent produced no structured answer.
type CountLettersResponse struct {
	FinalNumber    float64 `json:"finalNumber"`
	Reasoning      string  `json:"reasoning"`
	ChainOfThought string  `json:"chainOfThought"`
	Answer         string  `json:"answer"`
}

// ErrorResponse is the body of non JSON-RPC error replies.
type ErrorResponse struct {
	Error string `json:"error"`
}
