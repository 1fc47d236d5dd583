// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// MethodCodec holds the encode/decode closures of one method. It is the
// runtime counterpart of a generated request/response pair.
type MethodCodec struct {
	Arity  int
	Encode func(args []any) (Params, error)
	Decode func(result json.RawMessage) (any, error)
}

// Registry maps method names to their codecs. It serves callers that only
// learn the API at run time and gives up compile-time shape checking.
type Registry struct {
	mu      sync.RWMutex
	methods map[string]MethodCodec
}

func NewRegistry() *Registry {
	return &Registry{methods: make(map[string]MethodCodec)}
}

// Register adds a method. Registering a name twice is an error.
func (r *Registry) Register(method string, mc MethodCodec) error {
	if method == "" {
		return fmt.Errorf("empty method name")
	}
	if mc.Encode == nil || mc.Decode == nil {
		return fmt.Errorf("method %q: encode and decode are required", method)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.methods[method]; ok {
		return fmt.Errorf("method %q already registered", method)
	}
	r.methods[method] = mc
	return nil
}

// Methods returns the registered method names in sorted order.
func (r *Registry) Methods() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has checks if a method is registered
func (r *Registry) Has(method string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.methods[method]
	return ok
}

// Request builds a request for method with positional args. Unknown methods
// and arity mismatches are Custom errors.
func (r *Registry) Request(method string, args ...any) (DynamicRequest, error) {
	r.mu.RLock()
	mc, ok := r.methods[method]
	r.mu.RUnlock()
	if !ok {
		return DynamicRequest{}, Custom(fmt.Sprintf("unknown method %q", method))
	}
	if len(args) != mc.Arity {
		return DynamicRequest{}, Custom(fmt.Sprintf("method %q takes %d arguments, got %d", method, mc.Arity, len(args)))
	}
	return DynamicRequest{method: method, args: args, codec: mc}, nil
}

// DynamicRequest is a Request built from a Registry.
type DynamicRequest struct {
	method string
	args   []any
	codec  MethodCodec
}

func (d DynamicRequest) Method() string {
	return d.method
}

func (d DynamicRequest) Params() (Params, error) {
	return d.codec.Encode(d.args)
}

func (d DynamicRequest) DecodeOutput(result json.RawMessage) (any, error) {
	return d.codec.Decode(result)
}
