// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package idl

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"strconv"
	"strings"
	"text/template"
)

// GeneratedHeader marks files written by Generate.
const GeneratedHeader = "// Code generated by jsonrpc-gen. DO NOT EDIT."

var sourceTemplate = template.Must(template.New("api").Funcs(template.FuncMap{
	"quote":  strconv.Quote,
	"args":   builderArgs,
	"fields": builderFields,
	"refs":   fieldRefs,
	"vals":   builderValues,
	"pascal": PascalCase,
}).Parse(`{{.Header}}

package {{.API.Package}}
{{if .API.Methods}}
import (
	"encoding/json"
{{range .API.Imports}}	{{quote .}}
{{end}}
	"github.com/luxfi/jsonrpc"
)
{{end}}
// {{.API.Name}} builds the requests of the {{.API.Name}} API from outside the
// package. Its methods forward to the package-level builders.
type {{.API.Name}} struct{}

// {{.API.Name}}Methods lists the wire method names of the {{.API.Name}} API.
var {{.API.Name}}Methods = []string{
{{range .API.Methods}}	{{quote .WireName}},
{{end}}}
{{range .API.Methods}}
// {{.RequestName}} calls {{.WireName}}.
type {{.RequestName}} struct {
{{range $i, $t := .Params}}	V{{$i}} {{$t}}
{{end}}}

var _ jsonrpc.Request[{{.ResponseName}}] = {{.RequestName}}{}

func ({{.RequestName}}) Method() string {
	return {{quote .WireName}}
}

func ({{if .Params}}r {{end}}{{.RequestName}}) Params() (jsonrpc.Params, error) {
{{- if .Params}}
	return jsonrpc.EncodeParams({{refs .Params}})
{{- else}}
	return jsonrpc.NoParams(), nil
{{- end}}
}

func ({{.RequestName}}) DecodeOutput(result json.RawMessage) ({{.ResponseName}}, error) {
	return {{.ResponseName}}FromValue(result)
}

// {{.ResponseName}} is the result of {{.WireName}}.
type {{.ResponseName}} struct {
	value {{.Returns}}
}

func New{{.ResponseName}}(v {{.Returns}}) {{.ResponseName}} {
	return {{.ResponseName}}{value: v}
}

func (r {{.ResponseName}}) Unwrap() {{.Returns}} {
	return r.value
}

func {{.ResponseName}}FromValue(v json.RawMessage) ({{.ResponseName}}, error) {
	var r {{.ResponseName}}
	if err := jsonrpc.DecodeValue(v, &r.value); err != nil {
		return {{.ResponseName}}{}, err
	}
	return r, nil
}

func (r {{.ResponseName}}) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.value)
}

func (r *{{.ResponseName}}) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &r.value)
}

func {{.BuilderName}}({{args .Params}}) {{.RequestName}} {
	return {{.RequestName}}{ {{- fields .Params -}} }
}

func ({{$.API.Name}}) {{pascal .Name}}({{args .Params}}) {{.RequestName}} {
	return {{.BuilderName}}({{vals .Params}})
}
{{end}}`))

func builderArgs(params []string) string {
	parts := make([]string, len(params))
	for i, t := range params {
		parts[i] = fmt.Sprintf("v%d %s", i, t)
	}
	return strings.Join(parts, ", ")
}

func builderFields(params []string) string {
	parts := make([]string, len(params))
	for i := range params {
		parts[i] = fmt.Sprintf("V%d: v%d", i, i)
	}
	return strings.Join(parts, ", ")
}

func builderValues(params []string) string {
	parts := make([]string, len(params))
	for i := range params {
		parts[i] = fmt.Sprintf("v%d", i)
	}
	return strings.Join(parts, ", ")
}

func fieldRefs(params []string) string {
	parts := make([]string, len(params))
	for i := range params {
		parts[i] = fmt.Sprintf("r.V%d", i)
	}
	return strings.Join(parts, ", ")
}

// Source renders the Go source of api, formatted with gofmt.
func Source(api *API) ([]byte, error) {
	var buf bytes.Buffer
	err := sourceTemplate.Execute(&buf, struct {
		Header string
		API    *API
	}{GeneratedHeader, api})
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", api.Name, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("generated source for %s does not parse: %w", api.Name, err)
	}
	return src, nil
}

// Generate writes the Go source of api to w.
func Generate(api *API, w io.Writer) error {
	src, err := Source(api)
	if err != nil {
		return err
	}
	_, err = w.Write(src)
	return err
}
