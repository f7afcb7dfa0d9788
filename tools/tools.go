// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

// Package tools holds the local functions the hosted calculator agent calls.
package tools

import (
	"errors"
	"math"
	"strings"
)

// Tool names as exposed to the hosted agent.
const (
	NameCountLetters        = "count_letters"
	NameCalculateSquareRoot = "calculate_square_root"
)

// ErrNegativeNumber is returned when a square root of a negative number is requested.
var ErrNegativeNumber = errors.New("cannot calculate the square root of a negative number")

// CountLetters counts the non-overlapping occurrences of character in phrase.
func CountLetters(character, phrase string) int {
	return strings.Count(phrase, character)
}

// CalculateSquareRoot returns the square root of number.
func CalculateSquareRoot(number float64) (float64, error) {
	if number < 0 {
		return 0, ErrNegativeNumber
	}
	return math.Sqrt(number), nil
}

// CountLettersArgs are the arguments of the count_letters tool.
type CountLettersArgs struct {
	Character string `json:"character" jsonschema:"description=The character that needs to be counted in the string."`
	Phrase    string `json:"phrase" jsonschema:"description=The word or phrase that needs its characters counted."`
}

// CountLettersResult is the output of the count_letters tool.
type CountLettersResult struct {
	Count int `json:"count"`
}

// SquareRootArgs are the arguments of the calculate_square_root tool.
type SquareRootArgs struct {
	Number float64 `json:"number" jsonschema:"description=The number you want the square root to be calculated for."`
}

// SquareRootResult is the output of the calculate_square_root tool.
type SquareRootResult struct {
	SquareRoot float64 `json:"square_root"`
}
