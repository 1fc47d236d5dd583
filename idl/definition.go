// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package idl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// Format is the encoding of an IDL document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the document format from a file extension. Anything that is
// not .json is read as YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Definition is an interface definition: an ordered list of method
// signatures plus the settings of the generated Go file.
type Definition struct {
	// Package is the Go package of the generated file.
	Package string `yaml:"package" json:"package" validate:"required,ident"`
	// Name names the API.
	Name string `yaml:"name" json:"name" validate:"required,ident"`
	// Namespace prefixes every wire method name with "Namespace.".
	Namespace string `yaml:"namespace,omitempty" json:"namespace,omitempty" validate:"omitempty,ident"`
	// Imports are extra import paths needed by the declared types.
	Imports []string `yaml:"imports,omitempty" json:"imports,omitempty" validate:"dive,required"`

	Qualifiers []string `yaml:"qualifiers,omitempty" json:"qualifiers,omitempty"`
	Generics   []string `yaml:"generics,omitempty" json:"generics,omitempty"`
	Extends    []string `yaml:"extends,omitempty" json:"extends,omitempty"`

	Methods []Method `yaml:"methods" json:"methods" validate:"dive"`
}

// Method is one method signature.
type Method struct {
	Name    string  `yaml:"name" json:"name" validate:"required,ident"`
	Params  []Param `yaml:"params,omitempty" json:"params,omitempty"`
	Returns string  `yaml:"returns,omitempty" json:"returns,omitempty"`

	// The members below describe signature features the compiler rejects.
	Qualifiers []string `yaml:"qualifiers,omitempty" json:"qualifiers,omitempty"`
	ABI        string   `yaml:"abi,omitempty" json:"abi,omitempty"`
	Generics   []string `yaml:"generics,omitempty" json:"generics,omitempty"`
	Variadic   bool     `yaml:"variadic,omitempty" json:"variadic,omitempty"`
	Attributes []string `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	Default    string   `yaml:"default,omitempty" json:"default,omitempty"`
}

// Param is a parameter. In a document it is either a bare type
//
//	params: [int, "[]string"]
//
// or a mapping, which is how a binding to a name or pattern is expressed:
//
//	params:
//	  - {name: a, type: int}
type Param struct {
	Type    string `yaml:"type" json:"type"`
	Name    string `yaml:"name,omitempty" json:"name,omitempty"`
	Pattern string `yaml:"pattern,omitempty" json:"pattern,omitempty"`
}

// Bound reports whether the parameter binds to anything other than a bare
// type.
func (p Param) Bound() bool {
	return p.Name != "" || p.Pattern != ""
}

type paramFields Param

func (p *Param) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var bare string
	if err := unmarshal(&bare); err == nil {
		*p = Param{Type: bare}
		return nil
	}
	var fields paramFields
	if err := unmarshal(&fields); err != nil {
		return err
	}
	*p = Param(fields)
	return nil
}

func (p *Param) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '"' {
		var bare string
		if err := json.Unmarshal(trimmed, &bare); err != nil {
			return err
		}
		*p = Param{Type: bare}
		return nil
	}
	var fields paramFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*p = Param(fields)
	return nil
}

// Parse decodes an IDL document. It does not validate it.
func Parse(data []byte, format Format) (*Definition, error) {
	def := new(Definition)
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(def); err != nil {
			return nil, fmt.Errorf("failed to parse json definition: %w", err)
		}
	case FormatYAML:
		if err := yaml.UnmarshalStrict(data, def); err != nil {
			return nil, fmt.Errorf("failed to parse yaml definition: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown definition format %q", format)
	}
	return def, nil
}

// Load reads and parses the IDL document at path.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	return Parse(data, FormatOf(path))
}
