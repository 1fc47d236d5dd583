// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValueNull(t *testing.T) {
	for _, data := range []json.RawMessage{nil, json.RawMessage("null"), json.RawMessage(" null ")} {
		var n int
		assert.True(t, IsKind(DecodeValue(data, &n), KindEncoding), "int from %q", data)

		var s string
		assert.True(t, IsKind(DecodeValue(data, &s), KindEncoding), "string from %q", data)

		var pair struct{ A int }
		assert.True(t, IsKind(DecodeValue(data, &pair), KindEncoding), "struct from %q", data)

		var unit struct{}
		assert.NoError(t, DecodeValue(data, &unit))

		var p *int
		require.NoError(t, DecodeValue(data, &p))
		assert.Nil(t, p)

		var list []string
		require.NoError(t, DecodeValue(data, &list))
		assert.Nil(t, list)

		var m map[string]int
		require.NoError(t, DecodeValue(data, &m))

		var v any
		require.NoError(t, DecodeValue(data, &v))
		assert.Nil(t, v)
	}
}

func TestDecodeValue(t *testing.T) {
	var n int
	require.NoError(t, DecodeValue(json.RawMessage("5"), &n))
	assert.Equal(t, 5, n)

	err := DecodeValue(json.RawMessage(`"five"`), &n)
	assert.True(t, IsKind(err, KindEncoding))
}

func TestParseSingleResponseNullResult(t *testing.T) {
	_, err := ParseSingleResponse(addRequest{}, SingleResponse{Output: Success{Version: V2, ID: NumID(1), Result: json.RawMessage("null")}})
	require.ErrorIs(t, err, ErrParseResult)
	assert.True(t, IsKind(err, KindCustom))
}

type countingCodec struct {
	JSONCodec
	encoded, decoded atomic.Int32
}

func (c *countingCodec) Encode(v interface{}) ([]byte, error) {
	c.encoded.Add(1)
	return c.JSONCodec.Encode(v)
}

func (c *countingCodec) Decode(data []byte, v interface{}) error {
	c.decoded.Add(1)
	return c.JSONCodec.Decode(data, v)
}

type failingCodec struct{ JSONCodec }

func (failingCodec) Encode(interface{}) ([]byte, error) {
	return nil, errors.New("encoder unavailable")
}

func TestSetCodec(t *testing.T) {
	c := new(countingCodec)
	SetCodec(c)
	defer SetCodec(nil)

	data, err := EncodeRequest(addRequest{V0: 2, V1: 3}, Num(1))
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","method":"add","params":[2,3],"id":1}`, string(data))
	// Two params and the envelope.
	assert.EqualValues(t, 3, c.encoded.Load())

	var n int
	require.NoError(t, DecodeValue(json.RawMessage("5"), &n))
	assert.EqualValues(t, 1, c.decoded.Load())

	SetCodec(failingCodec{})
	_, err = ToString(pingRequest{}, Num(1))
	assert.True(t, IsKind(err, KindEncoding))
	_, err = EncodeRequest(pingRequest{}, Num(1))
	assert.True(t, IsKind(err, KindEncoding))

	SetCodec(nil)
	text, err := ToString(pingRequest{}, Num(1))
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","method":"ping","id":1}`, text)
}
