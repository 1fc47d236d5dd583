// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"encoding/json"
	"testing"

	"github.com/gorilla/rpc/v2/json2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsNoneIsNotEmptyArray(t *testing.T) {
	none := NoParams()
	empty := ArrayParams()
	assert.True(t, none.IsNone())
	assert.False(t, empty.IsNone())
	assert.Equal(t, 0, empty.Len())

	data, err := json.Marshal(MethodCall{Version: V2, Method: "m", Params: none, ID: NumID(1)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","method":"m","id":1}`, string(data))

	data, err = json.Marshal(MethodCall{Version: V2, Method: "m", Params: empty, ID: NumID(1)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","method":"m","params":[],"id":1}`, string(data))

	params, err := EncodeParams()
	require.NoError(t, err)
	assert.True(t, params.IsNone())
}

func TestParamsUnmarshal(t *testing.T) {
	var p Params
	require.NoError(t, json.Unmarshal([]byte(`[1,"a",{"b":true}]`), &p))
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, json.RawMessage(`"a"`), p.Values()[1])

	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &p))
}

func TestIDJSON(t *testing.T) {
	tests := []struct {
		id   ID
		wire string
	}{
		{NumID(0), `0`},
		{NumID(18446744073709551615), `18446744073709551615`},
		{StrID("req-1"), `"req-1"`},
		{NullID(), `null`},
	}
	for _, tt := range tests {
		data, err := json.Marshal(tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.wire, string(data))

		var got ID
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, tt.id, got)
	}

	var id ID
	assert.Error(t, json.Unmarshal([]byte(`-1`), &id))
	assert.Error(t, json.Unmarshal([]byte(`1.5`), &id))
	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
}

func TestVersionUnmarshal(t *testing.T) {
	var v Version
	require.NoError(t, json.Unmarshal([]byte(`"2.0"`), &v))
	assert.Equal(t, V2, v)
	assert.Error(t, json.Unmarshal([]byte(`"1.0"`), &v))
}

func TestDecodeResponse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		env, err := DecodeResponse([]byte(`{"jsonrpc":"2.0","id":1,"result":"pong"}`))
		require.NoError(t, err)
		single, ok := env.(SingleResponse)
		require.True(t, ok)
		success, ok := single.Output.(Success)
		require.True(t, ok)
		assert.Equal(t, V2, success.Version)
		assert.Equal(t, NumID(1), success.ID)
		assert.Equal(t, json.RawMessage(`"pong"`), success.Result)
	})

	t.Run("null result is a success", func(t *testing.T) {
		env, err := DecodeResponse([]byte(`{"jsonrpc":"2.0","id":"x","result":null}`))
		require.NoError(t, err)
		_, ok := env.(SingleResponse).Output.(Success)
		assert.True(t, ok)
	})

	t.Run("failure", func(t *testing.T) {
		env, err := DecodeResponse([]byte(`{"jsonrpc":"2.0","id":null,"error":{"code":-32700,"message":"Parse error","data":{"at":3}}}`))
		require.NoError(t, err)
		failure, ok := env.(SingleResponse).Output.(Failure)
		require.True(t, ok)
		assert.True(t, failure.ID.IsNull())
		assert.Equal(t, json2.E_PARSE, failure.Error.Code)
		assert.Equal(t, "Parse error", failure.Error.Message)
		assert.Equal(t, map[string]interface{}{"at": float64(3)}, failure.Error.Data)
	})

	t.Run("null error member is ignored", func(t *testing.T) {
		env, err := DecodeResponse([]byte(`{"jsonrpc":"2.0","id":1,"result":7,"error":null}`))
		require.NoError(t, err)
		_, ok := env.(SingleResponse).Output.(Success)
		assert.True(t, ok)
	})

	t.Run("batch", func(t *testing.T) {
		env, err := DecodeResponse([]byte(` [{"jsonrpc":"2.0","id":1,"result":1},{"jsonrpc":"2.0","id":2,"error":{"code":-32603,"message":"x"}}]`))
		require.NoError(t, err)
		batch, ok := env.(BatchResponse)
		require.True(t, ok)
		require.Len(t, batch.Outputs, 2)
		assert.IsType(t, Success{}, batch.Outputs[0])
		assert.IsType(t, Failure{}, batch.Outputs[1])
	})

	invalid := map[string]string{
		"empty":            ``,
		"not json":         `pong`,
		"both members":     `{"jsonrpc":"2.0","id":1,"result":1,"error":{"code":1,"message":"x"}}`,
		"neither member":   `{"jsonrpc":"2.0","id":1}`,
		"wrong version":    `{"jsonrpc":"1.0","id":1,"result":1}`,
		"bad id":           `{"jsonrpc":"2.0","id":{},"result":1}`,
		"bad batch member": `[{"jsonrpc":"2.0","id":1}]`,
	}
	for name, body := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeResponse([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestResponseRoundTrip(t *testing.T) {
	envelopes := []ResponseEnvelope{
		SingleResponse{Output: Success{Version: V2, ID: NumID(3), Result: json.RawMessage(`{"a":[1,2]}`)}},
		SingleResponse{Output: Failure{Version: V2, ID: StrID("z"), Error: &json2.Error{Code: json2.E_SERVER, Message: "down", Data: "retry later"}}},
		BatchResponse{Outputs: []Output{
			Success{Version: V2, ID: NumID(1), Result: json.RawMessage(`"one"`)},
		}},
	}
	for _, env := range envelopes {
		data, err := json.Marshal(env)
		require.NoError(t, err)
		got, err := DecodeResponse(data)
		require.NoError(t, err)
		assert.Equal(t, env, got)
	}
}

func TestBatchRequestMarshal(t *testing.T) {
	data, err := json.Marshal(BatchRequest{Calls: []Call{
		MethodCall{Version: V2, Method: "a", Params: NoParams(), ID: NumID(1)},
		Notification{Version: V2, Method: "b", Params: ArrayParams(json.RawMessage("1"))},
	}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"jsonrpc":"2.0","method":"a","id":1},{"jsonrpc":"2.0","method":"b","params":[1]}]`, string(data))
}
