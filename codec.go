// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"sync/atomic"
)

// Codec encodes/decodes JSON values
type Codec interface {
	Encode(v interface{}) ([]byte, error)
	Decode(data []byte, v interface{}) error
}

// JSONCodec is the encoding/json codec
type JSONCodec struct{}

func (JSONCodec) Encode(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Decode(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

type codecBox struct{ Codec }

// pkgCodec is used by params encoding, result decoding and request encoding
var pkgCodec atomic.Pointer[codecBox]

// SetCodec replaces the codec used for params, results and request
// envelopes. A nil codec restores JSONCodec.
func SetCodec(c Codec) {
	if c == nil {
		c = JSONCodec{}
	}
	pkgCodec.Store(&codecBox{c})
}

func codec() Codec {
	if box := pkgCodec.Load(); box != nil {
		return box.Codec
	}
	return JSONCodec{}
}

var errNullValue = errors.New("null is not a value of the target type")

// DecodeValue decodes a JSON value into v. Failures are Encoding errors.
//
// A null or absent value only decodes into targets that can hold nil
// (pointers, slices, maps, interfaces) and into empty structs.
func DecodeValue(data json.RawMessage, v interface{}) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		if !nullable(v) {
			return Encoding(msgDecodeValue, errNullValue)
		}
		data = json.RawMessage("null")
	}
	if err := codec().Decode(data, v); err != nil {
		return Encoding(msgDecodeValue, err)
	}
	return nil
}

func nullable(v interface{}) bool {
	t := reflect.TypeOf(v)
	if t == nil || t.Kind() != reflect.Pointer {
		return false
	}
	switch elem := t.Elem(); elem.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return true
	case reflect.Struct:
		return elem.NumField() == 0
	default:
		return false
	}
}
