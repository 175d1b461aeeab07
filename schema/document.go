// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package schema

import (
	"fmt"

	"github.com/z5labs/iniconf/config"
	"github.com/z5labs/iniconf/config/key"

	"github.com/go-viper/mapstructure/v2"
)

// Parameter is the declarative form of a single config.Definition.
type Parameter struct {
	Key        string   `config:"key"`
	Default    string   `config:"default"`
	Multi      bool     `config:"multi"`
	Usage      string   `config:"usage"`
	Options    []string `config:"options"`
	Processors []string `config:"processors"`
	Validators []string `config:"validators"`
}

// Document is an ordered list of parameters.
type Document struct {
	Parameters []Parameter `config:"parameters"`
}

// DecodeError occurs when a parsed schema document does not have the
// shape of a [Document], e.g. it contains unknown fields.
type DecodeError struct {
	Cause error
}

// Error implements the error interface.
func (e DecodeError) Error() string {
	return fmt.Sprintf("failed to decode schema document: %s", e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e DecodeError) Unwrap() error {
	return e.Cause
}

// Decode converts a generic map, as produced by any of the supported
// formats, into a [Document]. Scalars are weakly typed so `default: 3`
// and `default: "3"` are equivalent.
func Decode(m map[string]any) (Document, error) {
	var doc Document
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "config",
		Result:           &doc,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Document{}, DecodeError{Cause: err}
	}

	err = dec.Decode(m)
	if err != nil {
		return Document{}, DecodeError{Cause: err}
	}
	return doc, nil
}

// ParameterError associates a failure with the parameter it was found in.
type ParameterError struct {
	Index int
	Key   string
	Cause error
}

// Error implements the error interface.
func (e ParameterError) Error() string {
	return fmt.Sprintf("invalid schema parameter #%d (%s): %s", e.Index, e.Key, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e ParameterError) Unwrap() error {
	return e.Cause
}

// Build resolves every processor and validator name against c and
// returns the resulting config.Schema, declared in document order.
func (d Document) Build(c *Catalog) (*config.Schema, error) {
	defs := make([]config.Definition, 0, len(d.Parameters))
	for i, p := range d.Parameters {
		def, err := p.definition(c)
		if err != nil {
			return nil, ParameterError{Index: i, Key: p.Key, Cause: err}
		}
		defs = append(defs, def)
	}
	return config.NewSchema(defs...)
}

func (p Parameter) definition(c *Catalog) (config.Definition, error) {
	k, err := key.Parse(p.Key)
	if err != nil {
		return config.Definition{}, err
	}

	m := config.Metadata{
		Default: p.Default,
		Multi:   p.Multi,
		Usage:   p.Usage,
		Options: p.Options,
	}
	for _, name := range p.Processors {
		proc, err := c.Processor(name)
		if err != nil {
			return config.Definition{}, err
		}
		m.Processors = append(m.Processors, proc)
	}
	for _, expr := range p.Validators {
		v, err := c.Validator(expr)
		if err != nil {
			return config.Definition{}, err
		}
		m.Validators = append(m.Validators, v)
	}
	return config.Define(k, m), nil
}
