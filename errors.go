// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"errors"
	"fmt"

	"github.com/gorilla/rpc/v2/json2"
)

// Kind identifies the branch of the error taxonomy an Error belongs to.
type Kind uint8

const (
	// KindOptionNone means an expected value was absent.
	KindOptionNone Kind = iota + 1
	// KindCustom is an ad hoc contract violation, such as a batch response.
	KindCustom
	// KindProtocol carries the error object returned by the remote peer.
	KindProtocol
	// KindEncoding is a local JSON encode or decode failure.
	KindEncoding
	// KindTransport is a network or HTTP level failure.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindOptionNone:
		return "OptionNone"
	case KindCustom:
		return "Custom"
	case KindProtocol:
		return "Protocol"
	case KindEncoding:
		return "Encoding"
	case KindTransport:
		return "Transport"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

const (
	msgBatchResponse = "could not be a batch response"
	msgParseResult   = "failed to parse the result"
	msgRequestCore   = "failed to parse a request core"
	msgRequestString = "failed to convert a single request to string"
	msgDecodeValue   = "failed to decode a value"
)

var (
	// ErrBatchResponse is returned for every batch response, whatever it contains.
	ErrBatchResponse = Custom(msgBatchResponse)

	// ErrParseResult matches result decoding failures with errors.Is.
	ErrParseResult = Custom(msgParseResult)
)

// Error is the single failure type returned by the envelope protocol and the
// transport clients.
//
// Only the fields relevant to Kind are set: Message for Custom and Encoding,
// Remote for Protocol, Err for the wrapped cause of Encoding and Transport.
type Error struct {
	Kind    Kind
	Message string
	Remote  *json2.Error
	Err     error
}

// None returns an OptionNone error.
func None() *Error {
	return &Error{Kind: KindOptionNone}
}

// Custom returns a Custom error carrying msg.
func Custom(msg string) *Error {
	return &Error{Kind: KindCustom, Message: msg}
}

// Protocol wraps the error object sent by the remote peer verbatim.
func Protocol(remote *json2.Error) *Error {
	return &Error{Kind: KindProtocol, Remote: remote}
}

// Encoding returns an Encoding error with an optional cause.
func Encoding(msg string, cause error) *Error {
	return &Error{Kind: KindEncoding, Message: msg, Err: cause}
}

// Transport wraps a network or HTTP failure.
func Transport(cause error) *Error {
	return &Error{Kind: KindTransport, Err: cause}
}

// Error returns a diagnostic dump of the kind and payload. It is not meant to
// be parsed.
func (e *Error) Error() string {
	switch e.Kind {
	case KindOptionNone:
		return "OptionNone"
	case KindCustom:
		if e.Err != nil {
			return fmt.Sprintf("Custom(%q: %v)", e.Message, e.Err)
		}
		return fmt.Sprintf("Custom(%q)", e.Message)
	case KindProtocol:
		if e.Remote == nil {
			return "Protocol(<nil>)"
		}
		return fmt.Sprintf("Protocol(code: %d, message: %q, data: %v)", e.Remote.Code, e.Remote.Message, e.Remote.Data)
	case KindEncoding:
		if e.Err != nil {
			return fmt.Sprintf("Encoding(%q: %v)", e.Message, e.Err)
		}
		return fmt.Sprintf("Encoding(%q)", e.Message)
	case KindTransport:
		return fmt.Sprintf("Transport(%v)", e.Err)
	default:
		return fmt.Sprintf("%s(%q)", e.Kind, e.Message)
	}
}

// Unwrap returns the remote error object for Protocol errors and the wrapped
// cause otherwise.
func (e *Error) Unwrap() error {
	if e.Remote != nil {
		return e.Remote
	}
	return e.Err
}

// Is reports whether target is an *Error of the same kind. A target with a
// message only matches errors carrying that message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
