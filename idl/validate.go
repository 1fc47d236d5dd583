// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package idl

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
)

// DefinitionError is one rejected element of a definition. Index is the
// position of the offending method, or -1 for API-level problems.
type DefinitionError struct {
	Index  int
	Method string
	Field  string
	Reason string
}

func (e *DefinitionError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("method %q (#%d) %s: %s", e.Method, e.Index, e.Field, e.Reason)
}

// Errors splits the error returned by Validate or Compile into the
// individual violations.
func Errors(err error) []*DefinitionError {
	var out []*DefinitionError
	for _, e := range multierr.Errors(err) {
		var de *DefinitionError
		if errors.As(e, &de) {
			out = append(out, de)
		}
	}
	return out
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("ident", func(fl validator.FieldLevel) bool {
			return isIdent(fl.Field().String())
		})
	})
	return validate
}

// reservedBuilders would shadow the imports of the generated file or
// declare a function the compiler treats specially.
var reservedBuilders = map[string]string{
	"json":    "shadows an import of the generated file",
	"jsonrpc": "shadows an import of the generated file",
	"init":    "declares a package initializer",
}

var (
	majorVersion  = regexp.MustCompile(`^v[0-9]+$`)
	versionSuffix = regexp.MustCompile(`\.v[0-9]+$`)
)

// importName is the package name an import path is expected to declare:
// its last element, skipping a major version element and dropping a
// gopkg.in style version suffix.
func importName(importPath string) string {
	importPath = strings.TrimSuffix(importPath, "/")
	name := path.Base(importPath)
	if majorVersion.MatchString(name) {
		name = path.Base(path.Dir(importPath))
	}
	return versionSuffix.ReplaceAllString(name, "")
}

type checker struct {
	errs error
}

func (c *checker) api(field, reason string) {
	c.errs = multierr.Append(c.errs, &DefinitionError{Index: -1, Field: field, Reason: reason})
}

func (c *checker) method(i int, m Method, field, reason string) {
	c.errs = multierr.Append(c.errs, &DefinitionError{Index: i, Method: m.Name, Field: field, Reason: reason})
}

// Validate checks def and reports every violation, not only the first. The
// returned error holds one *DefinitionError per violation; see Errors.
func Validate(def *Definition) error {
	if def == nil {
		return &DefinitionError{Index: -1, Field: "definition", Reason: "missing"}
	}
	c := new(checker)
	c.structure(def)

	for _, q := range def.Qualifiers {
		switch q {
		case "unsafe", "auto":
			c.api("qualifiers", fmt.Sprintf("don't support `%s`", q))
		default:
			c.api("qualifiers", fmt.Sprintf("unknown qualifier %q", q))
		}
	}
	if len(def.Generics) > 0 {
		c.api("generics", "don't support generics")
	}
	if len(def.Extends) > 0 {
		c.api("extends", "don't support super interfaces")
	}

	generated := make(map[string]string)
	claim := func(i int, m Method, name, what string) {
		if owner, ok := generated[name]; ok {
			c.method(i, m, "name", fmt.Sprintf("%s %s collides with %s", what, name, owner))
			return
		}
		generated[name] = fmt.Sprintf("%s of method %q", what, m.Name)
	}
	generated[def.Name+"Methods"] = "the method list"
	if isIdent(def.Name) {
		if token.IsExported(def.Name) {
			generated[def.Name] = "the API type"
		} else {
			c.api("name", fmt.Sprintf("%q does not produce an exported type name", def.Name))
		}
	}

	reserved := make(map[string]string, len(reservedBuilders)+len(def.Imports)+1)
	for name, reason := range reservedBuilders {
		reserved[name] = reason
	}
	if def.Package == "main" {
		reserved["main"] = "declares the program entry point"
	}
	for _, imp := range def.Imports {
		if name := importName(imp); name != "" {
			reserved[name] = fmt.Sprintf("shadows the import %q", imp)
		}
	}

	for i, m := range def.Methods {
		c.signature(i, m)
		if !isIdent(m.Name) {
			continue
		}
		pascal := PascalCase(m.Name)
		if pascal == "" || !token.IsExported(pascal) {
			c.method(i, m, "name", fmt.Sprintf("%q does not produce an exported type name", m.Name))
			continue
		}
		builder := BuilderName(m.Name)
		switch {
		case token.IsKeyword(builder):
			c.method(i, m, "name", fmt.Sprintf("builder %s is a Go keyword", builder))
		case types.Universe.Lookup(builder) != nil:
			c.method(i, m, "name", fmt.Sprintf("builder %s shadows a predeclared identifier", builder))
		case reserved[builder] != "":
			c.method(i, m, "name", fmt.Sprintf("builder %s %s", builder, reserved[builder]))
		}
		claim(i, m, RequestName(m.Name), "request type")
		claim(i, m, ResponseName(m.Name), "response type")
		claim(i, m, "New"+ResponseName(m.Name), "response constructor")
		claim(i, m, ResponseName(m.Name)+"FromValue", "response decoder")
		claim(i, m, builder, "builder")
		claim(i, m, "wire:"+wireName(def.Namespace, m.Name), "wire name")
	}
	return c.errs
}

func (c *checker) structure(def *Definition) {
	err := structValidator().Struct(def)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		c.api("definition", err.Error())
		return
	}
	for _, fe := range fieldErrs {
		reason := fmt.Sprintf("failed %q check", fe.Tag())
		switch fe.Tag() {
		case "required":
			reason = "is required"
		case "ident":
			reason = fmt.Sprintf("%q is not an identifier", fe.Value())
		}
		c.api(strings.TrimPrefix(fe.Namespace(), "Definition."), reason)
	}
}

func (c *checker) signature(i int, m Method) {
	if len(m.Attributes) > 0 {
		c.method(i, m, "attributes", "don't support attributes")
	}
	if m.Default != "" {
		c.method(i, m, "default", "don't support default implementation")
	}
	for _, q := range m.Qualifiers {
		switch q {
		case "const", "unsafe", "async":
			c.method(i, m, "qualifiers", fmt.Sprintf("don't support `%s`", q))
		default:
			c.method(i, m, "qualifiers", fmt.Sprintf("unknown qualifier %q", q))
		}
	}
	if m.ABI != "" {
		c.method(i, m, "abi", "don't support binary interface")
	}
	if len(m.Generics) > 0 {
		c.method(i, m, "generics", "don't support generics")
	}
	if m.Variadic {
		c.method(i, m, "variadic", "don't support variadic")
	}
	for j, p := range m.Params {
		field := fmt.Sprintf("params[%d]", j)
		if p.Bound() {
			c.method(i, m, field, "only support types not bound to any pattern")
			continue
		}
		if err := checkType(p.Type); err != nil {
			c.method(i, m, field, err.Error())
		}
	}
	if m.Returns != "" {
		if err := checkType(m.Returns); err != nil {
			c.method(i, m, "returns", err.Error())
		}
	}
}

// checkType accepts Go type expressions whose values encoding/json can
// handle. Generic instantiations are rejected, and so is the error
// interface, which has no JSON form to decode into.
func checkType(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return errors.New("missing type")
	}
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return fmt.Errorf("%q is not a Go type", expr)
	}
	var (
		bad   error
		visit func(n ast.Node) bool
	)
	visit = func(n ast.Node) bool {
		if bad != nil {
			return false
		}
		switch t := n.(type) {
		case *ast.Ident:
			if t.Name == "error" {
				bad = fmt.Errorf("%q is not JSON-decodable", expr)
			}
		case *ast.SelectorExpr:
			return false
		case *ast.Field:
			// Field names are not types.
			if t.Type != nil {
				ast.Inspect(t.Type, visit)
			}
			return false
		case *ast.ChanType:
			bad = fmt.Errorf("%q is not JSON-encodable", expr)
		case *ast.FuncType:
			bad = fmt.Errorf("%q is not JSON-encodable", expr)
		case *ast.Ellipsis:
			bad = errors.New("don't support variadic")
		case *ast.StructType:
			for _, f := range t.Fields.List {
				if !isTypeExpr(f.Type) {
					bad = fmt.Errorf("%q is not a Go type", expr)
				}
			}
		case *ast.InterfaceType:
			if t.Methods != nil && len(t.Methods.List) > 0 {
				bad = fmt.Errorf("%q is not JSON-decodable", expr)
			}
		}
		return true
	}
	ast.Inspect(node, visit)
	if bad != nil {
		return bad
	}
	if !isTypeExpr(node) {
		return fmt.Errorf("%q is not a Go type", expr)
	}
	return nil
}

func isTypeExpr(e ast.Expr) bool {
	switch t := e.(type) {
	case *ast.Ident:
		return true
	case *ast.SelectorExpr:
		_, ok := t.X.(*ast.Ident)
		return ok
	case *ast.StarExpr:
		return isTypeExpr(t.X)
	case *ast.ParenExpr:
		return isTypeExpr(t.X)
	case *ast.ArrayType:
		if t.Len != nil {
			if _, ok := t.Len.(*ast.BasicLit); !ok {
				return false
			}
		}
		return isTypeExpr(t.Elt)
	case *ast.MapType:
		return isTypeExpr(t.Key) && isTypeExpr(t.Value)
	case *ast.StructType, *ast.InterfaceType:
		return true
	default:
		return false
	}
}

func wireName(namespace, method string) string {
	if namespace == "" {
		return method
	}
	return namespace + "." + method
}
