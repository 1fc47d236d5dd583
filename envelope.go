// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/rpc/v2/json2"
)

// Call is either a MethodCall or a Notification.
type Call interface {
	isCall()
}

// MethodCall is a call that expects exactly one response.
type MethodCall struct {
	Version Version
	Method  string
	Params  Params
	ID      ID
}

// Notification is a call without an id; no response is expected.
type Notification struct {
	Version Version
	Method  string
	Params  Params
}

func (MethodCall) isCall()   {}
func (Notification) isCall() {}

type wireCall struct {
	Version Version `json:"jsonrpc,omitempty"`
	Method  string  `json:"method"`
	Params  *Params `json:"params,omitempty"`
	ID      *ID     `json:"id,omitempty"`
}

func (c MethodCall) MarshalJSON() ([]byte, error) {
	id := c.ID
	return json.Marshal(wireCall{
		Version: c.Version,
		Method:  c.Method,
		Params:  c.Params.wire(),
		ID:      &id,
	})
}

func (n Notification) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireCall{
		Version: n.Version,
		Method:  n.Method,
		Params:  n.Params.wire(),
	})
}

// RequestEnvelope is the outermost request object: a SingleRequest or a
// BatchRequest. The client only ever sends SingleRequest.
type RequestEnvelope interface {
	isRequestEnvelope()
}

type SingleRequest struct {
	Call Call
}

type BatchRequest struct {
	Calls []Call
}

func (SingleRequest) isRequestEnvelope() {}
func (BatchRequest) isRequestEnvelope()  {}

func (r SingleRequest) MarshalJSON() ([]byte, error) {
	if r.Call == nil {
		return nil, errors.New("single request without a call")
	}
	return json.Marshal(r.Call)
}

func (r BatchRequest) MarshalJSON() ([]byte, error) {
	if r.Calls == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.Calls)
}

// Output is the response to a single call: Success or Failure.
type Output interface {
	isOutput()
}

type Success struct {
	Version Version
	ID      ID
	Result  json.RawMessage
}

type Failure struct {
	Version Version
	ID      ID
	Error   *json2.Error
}

func (Success) isOutput() {}
func (Failure) isOutput() {}

func (s Success) MarshalJSON() ([]byte, error) {
	result := s.Result
	if len(result) == 0 {
		result = json.RawMessage("null")
	}
	return json.Marshal(struct {
		Version Version         `json:"jsonrpc,omitempty"`
		Result  json.RawMessage `json:"result"`
		ID      ID              `json:"id"`
	}{s.Version, result, s.ID})
}

func (f Failure) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Version Version      `json:"jsonrpc,omitempty"`
		Error   *json2.Error `json:"error"`
		ID      ID           `json:"id"`
	}{f.Version, f.Error, f.ID})
}

// ResponseEnvelope is the outermost response object: a SingleResponse or a
// BatchResponse.
type ResponseEnvelope interface {
	isResponseEnvelope()
}

type SingleResponse struct {
	Output Output
}

type BatchResponse struct {
	Outputs []Output
}

func (SingleResponse) isResponseEnvelope() {}
func (BatchResponse) isResponseEnvelope()  {}

func (r SingleResponse) MarshalJSON() ([]byte, error) {
	if r.Output == nil {
		return nil, errors.New("single response without an output")
	}
	return json.Marshal(r.Output)
}

func (r BatchResponse) MarshalJSON() ([]byte, error) {
	if r.Outputs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.Outputs)
}

// DecodeResponse parses the wire form of a response. A top-level array is a
// BatchResponse, an object is a SingleResponse.
func DecodeResponse(data []byte) (ResponseEnvelope, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty response")
	}
	if data[0] == '[' {
		var elems []json.RawMessage
		if err := json.Unmarshal(data, &elems); err != nil {
			return nil, fmt.Errorf("invalid batch response: %w", err)
		}
		outputs := make([]Output, 0, len(elems))
		for i, elem := range elems {
			out, err := decodeOutput(elem)
			if err != nil {
				return nil, fmt.Errorf("invalid batch element %d: %w", i, err)
			}
			outputs = append(outputs, out)
		}
		return BatchResponse{Outputs: outputs}, nil
	}
	out, err := decodeOutput(data)
	if err != nil {
		return nil, err
	}
	return SingleResponse{Output: out}, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeOutput(data []byte) (Output, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, fmt.Errorf("invalid response object: %w", err)
	}
	var version Version
	if raw, ok := members["jsonrpc"]; ok {
		if err := json.Unmarshal(raw, &version); err != nil {
			return nil, err
		}
	}
	var id ID
	if raw, ok := members["id"]; ok {
		if err := json.Unmarshal(raw, &id); err != nil {
			return nil, err
		}
	}

	// Some peers send the unused member as null.
	errRaw, hasError := members["error"]
	if hasError && isNull(errRaw) {
		hasError = false
	}
	result, hasResult := members["result"]

	switch {
	case hasError && hasResult && !isNull(result):
		return nil, errors.New("response carries both result and error")
	case hasError:
		remote := new(json2.Error)
		if err := json.Unmarshal(errRaw, remote); err != nil {
			return nil, fmt.Errorf("invalid error object: %w", err)
		}
		return Failure{Version: version, ID: id, Error: remote}, nil
	case hasResult:
		return Success{Version: version, ID: id, Result: result}, nil
	default:
		return nil, errors.New("response carries neither result nor error")
	}
}
