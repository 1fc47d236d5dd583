// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package idl

import "strings"

// UnitType is the Go type used for methods that declare no return type.
const UnitType = "struct{}"

// API is a validated definition with every generated name resolved.
type API struct {
	Package   string
	Name      string
	Namespace string
	Imports   []string
	Methods   []CompiledMethod
}

// CompiledMethod is one method of an API.
type CompiledMethod struct {
	// Name is the method name as declared.
	Name string
	// WireName is the method member sent on the wire.
	WireName     string
	RequestName  string
	ResponseName string
	BuilderName  string
	Params       []string
	Returns      string
}

// Arity is the number of positional parameters.
func (m CompiledMethod) Arity() int {
	return len(m.Params)
}

// Compile validates def and resolves the generated names of every method.
func Compile(def *Definition) (*API, error) {
	if err := Validate(def); err != nil {
		return nil, err
	}
	api := &API{
		Package:   def.Package,
		Name:      def.Name,
		Namespace: def.Namespace,
		Imports:   append([]string(nil), def.Imports...),
		Methods:   make([]CompiledMethod, 0, len(def.Methods)),
	}
	for _, m := range def.Methods {
		params := make([]string, len(m.Params))
		for i, p := range m.Params {
			params[i] = strings.TrimSpace(p.Type)
		}
		returns := strings.TrimSpace(m.Returns)
		if returns == "" {
			returns = UnitType
		}
		api.Methods = append(api.Methods, CompiledMethod{
			Name:         m.Name,
			WireName:     wireName(def.Namespace, m.Name),
			RequestName:  RequestName(m.Name),
			ResponseName: ResponseName(m.Name),
			BuilderName:  BuilderName(m.Name),
			Params:       params,
			Returns:      returns,
		})
	}
	return api, nil
}

// Method looks up a compiled method by its declared or wire name.
func (a *API) Method(name string) (CompiledMethod, bool) {
	for _, m := range a.Methods {
		if m.Name == name || m.WireName == name {
			return m, true
		}
	}
	return CompiledMethod{}, false
}

// WireNames lists the wire names of every method in declaration order.
func (a *API) WireNames() []string {
	names := make([]string, len(a.Methods))
	for i, m := range a.Methods {
		names[i] = m.WireName
	}
	return names
}
