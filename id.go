// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Version is the protocol version tag. The empty Version is omitted on the
// wire.
type Version string

// V2 is the only protocol version this package speaks.
const V2 Version = "2.0"

func (v Version) String() string {
	return string(v)
}

// UnmarshalJSON only accepts the "2.0" tag.
func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid jsonrpc version: %w", err)
	}
	if Version(s) != V2 {
		return fmt.Errorf("unsupported jsonrpc version: %q", s)
	}
	*v = V2
	return nil
}

type idKind uint8

const (
	idNull idKind = iota
	idNum
	idStr
)

// ID is a request identifier: a number, a string, or null. The zero ID is
// null, which only appears in responses the peer could not correlate.
type ID struct {
	kind idKind
	num  uint64
	str  string
}

// NumID returns a numeric identifier.
func NumID(n uint64) ID {
	return ID{kind: idNum, num: n}
}

// StrID returns a string identifier.
func StrID(s string) ID {
	return ID{kind: idStr, str: s}
}

// NullID returns the null identifier.
func NullID() ID {
	return ID{}
}

func (id ID) IsNull() bool {
	return id.kind == idNull
}

// Num returns the numeric value and whether id is numeric.
func (id ID) Num() (uint64, bool) {
	return id.num, id.kind == idNum
}

// Str returns the string value and whether id is a string.
func (id ID) Str() (string, bool) {
	return id.str, id.kind == idStr
}

func (id ID) String() string {
	switch id.kind {
	case idNum:
		return strconv.FormatUint(id.num, 10)
	case idStr:
		return strconv.Quote(id.str)
	default:
		return "null"
	}
}

func (id ID) MarshalJSON() ([]byte, error) {
	switch id.kind {
	case idNum:
		return []byte(strconv.FormatUint(id.num, 10)), nil
	case idStr:
		return json.Marshal(id.str)
	default:
		return []byte("null"), nil
	}
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty id")
	}
	switch data[0] {
	case 'n':
		if !bytes.Equal(data, []byte("null")) {
			return fmt.Errorf("invalid id: %s", data)
		}
		*id = NullID()
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid id: %w", err)
		}
		*id = StrID(s)
	default:
		n, err := strconv.ParseUint(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id: %s", data)
		}
		*id = NumID(n)
	}
	return nil
}
