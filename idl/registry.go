// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package idl

import (
	"encoding/json"
	"go/ast"
	"go/parser"
	"reflect"
	"strconv"

	"github.com/luxfi/jsonrpc"
)

var anyType = reflect.TypeOf((*any)(nil)).Elem()

var builtinTypes = map[string]reflect.Type{
	"bool":       reflect.TypeOf(false),
	"string":     reflect.TypeOf(""),
	"int":        reflect.TypeOf(int(0)),
	"int8":       reflect.TypeOf(int8(0)),
	"int16":      reflect.TypeOf(int16(0)),
	"int32":      reflect.TypeOf(int32(0)),
	"int64":      reflect.TypeOf(int64(0)),
	"uint":       reflect.TypeOf(uint(0)),
	"uint8":      reflect.TypeOf(uint8(0)),
	"uint16":     reflect.TypeOf(uint16(0)),
	"uint32":     reflect.TypeOf(uint32(0)),
	"uint64":     reflect.TypeOf(uint64(0)),
	"float32":    reflect.TypeOf(float32(0)),
	"float64":    reflect.TypeOf(float64(0)),
	"byte":       reflect.TypeOf(byte(0)),
	"rune":       reflect.TypeOf(rune(0)),
	"any":        anyType,
	"struct{}":   reflect.TypeOf(struct{}{}),
	"RawMessage": reflect.TypeOf(json.RawMessage(nil)),
}

// Registry builds a runtime registry with one entry per method, keyed by wire
// name. Results of builtin types, and of slices, arrays, maps and pointers of
// them, decode to those Go types. Anything else decodes to the generic JSON
// value encoding/json produces for an interface.
func (a *API) Registry() (*jsonrpc.Registry, error) {
	reg := jsonrpc.NewRegistry()
	for _, m := range a.Methods {
		result := resolveType(m.Returns)
		err := reg.Register(m.WireName, jsonrpc.MethodCodec{
			Arity: m.Arity(),
			Encode: func(args []any) (jsonrpc.Params, error) {
				if len(args) == 0 {
					return jsonrpc.NoParams(), nil
				}
				return jsonrpc.EncodeParams(args...)
			},
			Decode: func(raw json.RawMessage) (any, error) {
				out := reflect.New(result)
				if err := jsonrpc.DecodeValue(raw, out.Interface()); err != nil {
					return nil, err
				}
				return out.Elem().Interface(), nil
			},
		})
		if err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// resolveType maps a Go type expression onto a reflect.Type, falling back to
// the empty interface.
func resolveType(expr string) reflect.Type {
	if t, ok := builtinTypes[expr]; ok {
		return t
	}
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return anyType
	}
	return typeOf(node)
}

func typeOf(e ast.Expr) reflect.Type {
	switch t := e.(type) {
	case *ast.Ident:
		if rt, ok := builtinTypes[t.Name]; ok {
			return rt
		}
	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok && pkg.Name == "json" && t.Sel.Name == "RawMessage" {
			return builtinTypes["RawMessage"]
		}
	case *ast.ParenExpr:
		return typeOf(t.X)
	case *ast.StarExpr:
		if elem := typeOf(t.X); elem != anyType {
			return reflect.PointerTo(elem)
		}
	case *ast.ArrayType:
		elem := typeOf(t.Elt)
		if t.Len == nil {
			return reflect.SliceOf(elem)
		}
		if lit, ok := t.Len.(*ast.BasicLit); ok {
			if n, err := strconv.Atoi(lit.Value); err == nil && n >= 0 {
				return reflect.ArrayOf(n, elem)
			}
		}
	case *ast.MapType:
		key := typeOf(t.Key)
		if key.Kind() == reflect.String {
			return reflect.MapOf(key, typeOf(t.Value))
		}
	case *ast.StructType:
		if t.Fields == nil || len(t.Fields.List) == 0 {
			return builtinTypes["struct{}"]
		}
	case *ast.InterfaceType:
		return anyType
	}
	return anyType
}
