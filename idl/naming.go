// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package idl

import (
	"strings"
	"unicode"
)

const (
	requestSuffix  = "JsonRpcRequest"
	responseSuffix = "JsonRpcResponse"
)

// PascalCase splits id on underscores, upper-cases the first letter of each
// segment and joins the segments without a separator.
func PascalCase(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	capitalize := true
	for _, r := range id {
		switch {
		case r == '_':
			capitalize = true
		case capitalize:
			b.WriteRune(unicode.ToUpper(r))
			capitalize = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SnakeCase lower-cases every letter of id and inserts an underscore before
// each upper-case letter that is not the first character.
func SnakeCase(id string) string {
	var b strings.Builder
	b.Grow(len(id) + 4)
	for i, r := range id {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// RequestName is the generated request type name of a method.
func RequestName(method string) string {
	return PascalCase(method) + requestSuffix
}

// ResponseName is the generated response type name of a method.
func ResponseName(method string) string {
	return PascalCase(method) + responseSuffix
}

// BuilderName is the generated builder function name of a method.
func BuilderName(method string) string {
	return SnakeCase(method)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
