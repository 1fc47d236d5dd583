// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Params holds the parameters of a call: either none, in which case the
// params member is omitted from the wire, or an ordered array of encoded
// values. An empty array is not the same thing as None.
type Params struct {
	values []json.RawMessage
	array  bool
}

// NoParams returns the None variant.
func NoParams() Params {
	return Params{}
}

// ArrayParams returns the array variant holding values in order.
func ArrayParams(values ...json.RawMessage) Params {
	if values == nil {
		values = []json.RawMessage{}
	}
	return Params{values: values, array: true}
}

// EncodeParams encodes every value in order into an array. The first value
// that fails to encode aborts the conversion with an Encoding error naming
// its position. Without values it returns None.
func EncodeParams(values ...any) (Params, error) {
	if len(values) == 0 {
		return NoParams(), nil
	}
	encoded := make([]json.RawMessage, 0, len(values))
	for i, v := range values {
		raw, err := codec().Encode(v)
		if err != nil {
			return Params{}, Encoding(fmt.Sprintf("failed to encode parameter %d", i), err)
		}
		encoded = append(encoded, raw)
	}
	return ArrayParams(encoded...), nil
}

func (p Params) IsNone() bool {
	return !p.array
}

// Len returns the number of array elements; zero for None.
func (p Params) Len() int {
	return len(p.values)
}

// Values returns the encoded array elements; nil for None.
func (p Params) Values() []json.RawMessage {
	return p.values
}

// wire returns nil for None so that the params member is omitted.
func (p Params) wire() *Params {
	if p.IsNone() {
		return nil
	}
	return &p
}

func (p Params) MarshalJSON() ([]byte, error) {
	if p.IsNone() {
		return []byte("null"), nil
	}
	return json.Marshal(p.values)
}

// UnmarshalJSON accepts null, decoded as None, and arrays. By-name params are
// rejected since no generated request produces them.
func (p *Params) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = NoParams()
		return nil
	}
	var values []json.RawMessage
	if err := json.Unmarshal(data, &values); err != nil {
		return errors.New("params must be an array")
	}
	*p = ArrayParams(values...)
	return nil
}
