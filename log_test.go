// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"encoding/json"
	"testing"

	"github.com/gorilla/rpc/v2/json2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseSingleResponseTrace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	_, err := ParseSingleResponse(pingRequest{}, SingleResponse{Output: Success{Version: V2, ID: NumID(3), Result: json.RawMessage(`"pong"`)}})
	require.NoError(t, err)
	_, err = ParseSingleResponse(pingRequest{}, SingleResponse{Output: Failure{Version: V2, ID: StrID("x"), Error: &json2.Error{Code: json2.E_INTERNAL, Message: "boom"}}})
	require.Error(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Success", entries[0].Message)
	assert.Equal(t, "jsonrpc", entries[0].LoggerName)
	assert.Equal(t, "3", entries[0].ContextMap()["id"])
	assert.Equal(t, "Failure", entries[1].Message)
	assert.Equal(t, `"x"`, entries[1].ContextMap()["id"])
}
