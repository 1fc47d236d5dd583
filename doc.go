// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package jsonrpc provides the JSON-RPC 2.0 envelope protocol shared by
// generated API types and the HTTP clients.
//
// # Generated types
//
// An API is described once in an IDL document and compiled by jsonrpc-gen
// (see package idl). For every method the generator emits a request type, a
// response type and a builder function, plus one method on the exported API
// type that forwards to the builder:
//
//	methods:
//	  - name: add
//	    params: [int, int]
//	    returns: int
//
// becomes
//
//	type AddJsonRpcRequest struct{ V0, V1 int }
//	type AddJsonRpcResponse struct{ ... }     // wraps int
//	func add(v0 int, v1 int) AddJsonRpcRequest
//	func (Arith) Add(v0 int, v1 int) AddJsonRpcRequest
//
// Builders are unexported; other packages build requests through the API
// type, as in arith.Arith{}.Add(2, 3).
//
// Every request type implements Request, which binds the method name, the
// params encoding and the output type together.
//
// # Usage
//
//	client := httpclient.NewClient()
//	out, err := httpclient.Send(ctx, client.Post("http://localhost:9650/rpc"), arith.Arith{}.Add(2, 3), jsonrpc.Num(1))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sum := out.Unwrap() // 5
//
// # Wire rules
//
//   - a CommonPart with an id produces a method call, without one a notification
//   - methods without parameters omit params; they never send an empty array
//   - batch responses are recognised and always rejected
//
// # Errors
//
// Every failure is an *Error whose Kind is one of OptionNone, Custom,
// Protocol, Encoding or Transport. Protocol errors carry the peer's error
// object (a *json2.Error from github.com/gorilla/rpc) unchanged.
package jsonrpc
