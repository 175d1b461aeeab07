// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"testing"

	"github.com/z5labs/iniconf/config/key"

	"github.com/stretchr/testify/assert"
)

func TestNewSchema(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if a key is not of the form section/name", func(t *testing.T) {
			_, err := NewSchema(Define("general", Metadata{}))

			var kerr key.InvalidKeyError
			if !assert.ErrorAs(t, err, &kerr) {
				return
			}
			assert.Equal(t, "general", kerr.Key)
		})

		t.Run("if a key is declared twice", func(t *testing.T) {
			_, err := NewSchema(
				Define("general/debug", Metadata{}),
				Define("general/debug", Metadata{Default: "y"}),
			)

			var derr DuplicateKeyError
			if !assert.ErrorAs(t, err, &derr) {
				return
			}
			if !assert.Equal(t, key.Key("general/debug"), derr.Key) {
				return
			}
			assert.NotEmpty(t, derr.Error())
		})
	})

	t.Run("will not be affected by later changes to the definitions", func(t *testing.T) {
		options := []string{"y", "n"}
		s, err := NewSchema(Define("general/debug", Metadata{Options: options}))
		if !assert.Nil(t, err) {
			return
		}

		options[0] = "yes"

		m, ok := s.Lookup("general/debug")
		if !assert.True(t, ok) {
			return
		}
		assert.Equal(t, []string{"y", "n"}, m.Options)
	})
}

func TestMustSchema(t *testing.T) {
	t.Run("will panic", func(t *testing.T) {
		t.Run("if the definitions are invalid", func(t *testing.T) {
			assert.Panics(t, func() {
				MustSchema(Define("/debug", Metadata{}))
			})
		})
	})
}

func TestSchemaFromMap(t *testing.T) {
	t.Run("will declare keys in lexical order", func(t *testing.T) {
		s, err := SchemaFromMap(map[key.Key]Metadata{
			"b/two":   {},
			"a/one":   {},
			"b/three": {},
		})
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, 3, s.Len()) {
			return
		}
		assert.Equal(t, []key.Key{"a/one", "b/three", "b/two"}, s.Keys())
	})
}
