// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CommonPart carries the envelope members shared by every call: the
// protocol version and the optional id. A nil ID makes the call a
// notification.
type CommonPart struct {
	Version Version
	ID      *ID
}

// Num returns a CommonPart with a numeric id.
func Num(n uint64) CommonPart {
	id := NumID(n)
	return CommonPart{Version: V2, ID: &id}
}

// Str returns a CommonPart with a string id.
func Str(s string) CommonPart {
	id := StrID(s)
	return CommonPart{Version: V2, ID: &id}
}

// DefaultCommonPart is equivalent to Num(0).
func DefaultCommonPart() CommonPart {
	return Num(0)
}

// Random returns a CommonPart with a random UUID string id.
func Random() CommonPart {
	return Str(uuid.NewString())
}

// Notify returns a CommonPart without an id. Calls built from it are
// notifications and the peer sends no response.
func Notify() CommonPart {
	return CommonPart{Version: V2}
}

func (c CommonPart) IsNotification() bool {
	return c.ID == nil
}

// Request is implemented by every generated request type. O is the bound
// output type the result member decodes into.
type Request[O any] interface {
	// Method returns the JSON-RPC method name.
	Method() string
	// Params encodes the request parameters.
	Params() (Params, error)
	// DecodeOutput constructs the output from the decoded result member.
	DecodeOutput(result json.RawMessage) (O, error)
}

// ToCall builds a MethodCall when common has an id and a Notification
// otherwise.
func ToCall[O any](req Request[O], common CommonPart) (Call, error) {
	params, err := req.Params()
	if err != nil {
		return nil, Encoding(msgRequestCore, err)
	}
	if common.ID != nil {
		return MethodCall{
			Version: common.Version,
			Method:  req.Method(),
			Params:  params,
			ID:      *common.ID,
		}, nil
	}
	return Notification{
		Version: common.Version,
		Method:  req.Method(),
		Params:  params,
	}, nil
}

// ToSingleRequest wraps the call of req in a single (non-batch) envelope.
func ToSingleRequest[O any](req Request[O], common CommonPart) (RequestEnvelope, error) {
	call, err := ToCall(req, common)
	if err != nil {
		return nil, err
	}
	return SingleRequest{Call: call}, nil
}

// ToString returns the wire form of the single request envelope.
func ToString[O any](req Request[O], common CommonPart) (string, error) {
	data, err := EncodeRequest(req, common)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// EncodeRequest renders the request envelope of req as JSON bytes. It fails
// the same way ToString does.
func EncodeRequest[O any](req Request[O], common CommonPart) ([]byte, error) {
	envelope, err := ToSingleRequest(req, common)
	if err != nil {
		return nil, err
	}
	data, err := codec().Encode(envelope)
	if err != nil {
		return nil, Encoding(msgRequestString, err)
	}
	return data, nil
}

// ParseSingleResponse extracts the output of req from resp. Batch responses
// are always rejected; a Failure is returned as a Protocol error carrying the
// peer's code, message and data unchanged.
func ParseSingleResponse[O any](req Request[O], resp ResponseEnvelope) (O, error) {
	var zero O
	switch r := resp.(type) {
	case BatchResponse:
		return zero, ErrBatchResponse
	case SingleResponse:
		switch out := r.Output.(type) {
		case Success:
			logger().Debug("Success", zap.Stringer("jsonrpc", out.Version), zap.Stringer("id", out.ID))
			v, err := req.DecodeOutput(out.Result)
			if err != nil {
				return zero, &Error{Kind: KindCustom, Message: msgParseResult, Err: err}
			}
			return v, nil
		case Failure:
			logger().Debug("Failure", zap.Stringer("jsonrpc", out.Version), zap.Stringer("id", out.ID))
			return zero, Protocol(out.Error)
		default:
			return zero, Custom("single response without an output")
		}
	default:
		return zero, Custom("unknown response envelope")
	}
}
