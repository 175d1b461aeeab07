// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"slices"
	"strings"

	"github.com/z5labs/iniconf/config/key"
)

// MultiSeparator separates the items of a multi valued parameter.
const MultiSeparator = ","

// Value is the validated value of a parameter. It holds exactly one
// item for scalar parameters and any number of items for multi parameters.
type Value struct {
	multi bool
	items []string
}

// Scalar returns a single item Value.
func Scalar(s string) Value {
	return Value{items: []string{s}}
}

// Multi returns a multi item Value.
func Multi(items ...string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{multi: true, items: items}
}

func newValue(multi bool, items []string) Value {
	if multi {
		return Multi(items...)
	}
	return Scalar(items[0])
}

// IsMulti reports whether the Value belongs to a multi valued parameter.
func (v Value) IsMulti() bool {
	return v.multi
}

// String returns the scalar item or, for multi values, all items
// joined by [MultiSeparator]. The result is valid raw input for the
// same parameter.
func (v Value) String() string {
	if !v.multi {
		if len(v.items) == 0 {
			return ""
		}
		return v.items[0]
	}
	return strings.Join(v.items, MultiSeparator)
}

// Strings returns a copy of the items.
func (v Value) Strings() []string {
	return slices.Clone(v.items)
}

// Item pairs a key with its value.
type Item struct {
	Key   key.Key
	Value Value
}

// split turns raw input into pipeline items. Scalar input is never modified.
func split(multi bool, raw string) []string {
	if !multi {
		return []string{raw}
	}

	items := make([]string, 0)
	for _, s := range strings.Split(raw, MultiSeparator) {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		items = append(items, s)
	}
	return items
}
