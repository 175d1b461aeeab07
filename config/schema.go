// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"slices"

	"github.com/z5labs/iniconf/config/key"
)

// Definition declares a single parameter of a [Schema].
type Definition struct {
	Key      key.Key
	Metadata Metadata
}

// Define is shorthand for constructing a [Definition].
func Define(k key.Key, m Metadata) Definition {
	return Definition{Key: k, Metadata: m}
}

// Schema is an immutable, ordered set of parameter definitions.
//
// Declaration order is significant: keys are loaded, iterated and
// saved in that order.
type Schema struct {
	keys []key.Key
	meta map[key.Key]Metadata
}

// NewSchema validates the given definitions and returns them as a Schema.
func NewSchema(defs ...Definition) (*Schema, error) {
	s := &Schema{
		keys: make([]key.Key, 0, len(defs)),
		meta: make(map[key.Key]Metadata, len(defs)),
	}
	for _, def := range defs {
		err := def.Key.Validate()
		if err != nil {
			return nil, err
		}
		if _, exists := s.meta[def.Key]; exists {
			return nil, DuplicateKeyError{Key: def.Key}
		}

		s.keys = append(s.keys, def.Key)
		s.meta[def.Key] = def.Metadata.clone()
	}
	return s, nil
}

// MustSchema is like [NewSchema] but panics on error.
func MustSchema(defs ...Definition) *Schema {
	s, err := NewSchema(defs...)
	if err != nil {
		panic(err)
	}
	return s
}

// SchemaFromMap builds a Schema from m, declaring keys in lexical order.
func SchemaFromMap(m map[key.Key]Metadata) (*Schema, error) {
	keys := make([]key.Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	defs := make([]Definition, len(keys))
	for i, k := range keys {
		defs[i] = Define(k, m[k])
	}
	return NewSchema(defs...)
}

// Keys returns the declared keys in declaration order.
func (s *Schema) Keys() []key.Key {
	return slices.Clone(s.keys)
}

// Len returns the number of declared keys.
func (s *Schema) Len() int {
	return len(s.keys)
}

// Lookup returns the metadata declared for k.
func (s *Schema) Lookup(k key.Key) (Metadata, bool) {
	m, ok := s.meta[k]
	if !ok {
		return Metadata{}, false
	}
	return m.clone(), true
}
