// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"
	"reflect"
	"runtime"
	"slices"

	"github.com/z5labs/iniconf/config/key"
)

// Reader is the read-only view of a [Config] handed to processors and validators.
type Reader interface {
	Get(key.Key) (Value, error)
	Contains(key.Key) bool
}

// Processor transforms a single raw item before it is validated.
type Processor interface {
	Process(value string, k key.Key, cfg Reader) (string, error)
}

// ProcessorFunc is a functional implementation of the [Processor] interface.
type ProcessorFunc func(value string, k key.Key, cfg Reader) (string, error)

// Process implements the [Processor] interface.
func (f ProcessorFunc) Process(value string, k key.Key, cfg Reader) (string, error) {
	return f(value, k, cfg)
}

// Validator rejects a single processed item by returning a non-nil error.
type Validator interface {
	Validate(value string, k key.Key, cfg Reader) error
}

// ValidatorFunc is a functional implementation of the [Validator] interface.
type ValidatorFunc func(value string, k key.Key, cfg Reader) error

// Validate implements the [Validator] interface.
func (f ValidatorFunc) Validate(value string, k key.Key, cfg Reader) error {
	return f(value, k, cfg)
}

type namedProcessor struct {
	Processor
	name string
}

func (p namedProcessor) String() string { return p.name }

// NamedProcessor attaches a name to p which is used when logging.
func NamedProcessor(name string, p Processor) Processor {
	return namedProcessor{Processor: p, name: name}
}

type namedValidator struct {
	Validator
	name string
}

func (v namedValidator) String() string { return v.name }

// NamedValidator attaches a name to v which is used when logging.
func NamedValidator(name string, v Validator) Validator {
	return namedValidator{Validator: v, name: name}
}

// Metadata describes how a single parameter is defaulted, parsed,
// transformed, validated and documented.
type Metadata struct {
	// Default is used verbatim when the file has no value for the key.
	Default string

	// Multi values are split on [MultiSeparator] into trimmed, non-empty items.
	Multi bool

	// Processors are applied in order to every item.
	Processors []Processor

	// Validators are applied in order to every processed item.
	Validators []Validator

	// Options, if non-empty, is the closed set of allowed processed items.
	// It is checked before any Validator runs.
	Options []string

	// Usage is written back as a comment when saving.
	Usage string
}

func (m Metadata) clone() Metadata {
	m.Processors = slices.Clone(m.Processors)
	m.Validators = slices.Clone(m.Validators)
	m.Options = slices.Clone(m.Options)
	return m
}

func nameOf(v any) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Func {
		if f := runtime.FuncForPC(rv.Pointer()); f != nil {
			return f.Name()
		}
	}
	return fmt.Sprintf("%T", v)
}
