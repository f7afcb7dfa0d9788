// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestConfigure(t *testing.T) {
	defer func() { require.NoError(t, Configure("info", FormatConsole)) }()

	require.NoError(t, Configure("debug", FormatJSON))
	assert.Equal(t, zapcore.DebugLevel, level.Level())

	require.NoError(t, Configure("WARN", ""))
	assert.Equal(t, zapcore.WarnLevel, level.Level())

	assert.Error(t, Configure("loud", FormatConsole))
	assert.Error(t, Configure("info", "xml"))
}

func TestSetLogger(t *testing.T) {
	prev := logger()
	defer SetLogger(prev)

	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core).Sugar())

	Infof("answered question %d", 7)
	Warn("slow run")
	Errorf("run failed: %v", assert.AnError)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "answered question 7", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Contains(t, entries[2].Message, "run failed")
}
