// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumCodec() MethodCodec {
	return MethodCodec{
		Arity:  2,
		Encode: func(args []any) (Params, error) { return EncodeParams(args...) },
		Decode: func(result json.RawMessage) (any, error) {
			var n int
			if err := DecodeValue(result, &n); err != nil {
				return nil, err
			}
			return n, nil
		},
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("sum", sumCodec()))
	require.NoError(t, r.Register("abs", MethodCodec{
		Arity:  1,
		Encode: func(args []any) (Params, error) { return EncodeParams(args...) },
		Decode: func(json.RawMessage) (any, error) { return nil, nil },
	}))

	assert.Error(t, r.Register("sum", sumCodec()))
	assert.Error(t, r.Register("", sumCodec()))
	assert.Error(t, r.Register("half", MethodCodec{Arity: 1}))

	assert.True(t, r.Has("sum"))
	assert.False(t, r.Has("mul"))
	assert.Equal(t, []string{"abs", "sum"}, r.Methods())
}

func TestRegistryRequest(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("sum", sumCodec()))

	req, err := r.Request("sum", 1, 2)
	require.NoError(t, err)
	text, err := ToString(req, Num(9))
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","method":"sum","params":[1,2],"id":9}`, text)

	out, err := ParseSingleResponse(req, SingleResponse{Output: Success{Version: V2, ID: NumID(9), Result: json.RawMessage("3")}})
	require.NoError(t, err)
	assert.Equal(t, 3, out)

	_, err = r.Request("sum", 1)
	assert.True(t, IsKind(err, KindCustom))

	_, err = r.Request("mul", 1, 2)
	assert.True(t, IsKind(err, KindCustom))
}
