// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"slices"

	"github.com/z5labs/iniconf/config/key"
	"github.com/z5labs/iniconf/pkg/slogfield"
)

// pipeline turns raw input into a validated Value. The order of the
// steps is fixed: split, process, options check, validate.
func (c *Config) pipeline(k key.Key, m Metadata, raw string) (Value, error) {
	cfg := readOnly{c: c}

	items := split(m.Multi, raw)
	for i, item := range items {
		for _, p := range m.Processors {
			out, err := p.Process(item, k, cfg)
			if err != nil {
				return Value{}, ValidationError{
					Key:   k,
					Value: item,
					Stage: StageProcess,
					Cause: err,
				}
			}
			if out != item {
				c.log.Debug(
					"parameter processor changed value",
					slogfield.Key(k),
					slogfield.String("processor", nameOf(p)),
					slogfield.String("from", item),
					slogfield.String("to", out),
				)
			}
			item = out
		}
		if m.Multi {
			if parts := split(true, item); len(parts) != 1 || parts[0] != item {
				return Value{}, ValidationError{
					Key:   k,
					Value: item,
					Stage: StageProcess,
					Cause: SplitItemError{Item: item},
				}
			}
		}
		items[i] = item
	}

	if len(m.Options) > 0 {
		for _, item := range items {
			if slices.Contains(m.Options, item) {
				continue
			}
			c.log.Debug(
				"parameter value is not a valid option",
				slogfield.Key(k),
				slogfield.String("value", item),
				slogfield.Strings("options", m.Options),
			)
			return Value{}, ValidationError{
				Key:     k,
				Value:   item,
				Stage:   StageOptions,
				Options: slices.Clone(m.Options),
			}
		}
	}

	for _, item := range items {
		for _, v := range m.Validators {
			err := v.Validate(item, k, cfg)
			if err == nil {
				continue
			}
			c.log.Debug(
				"parameter validator failed validation",
				slogfield.Key(k),
				slogfield.String("validator", nameOf(v)),
				slogfield.String("value", item),
				slogfield.Error(err),
			)
			return Value{}, ValidationError{
				Key:   k,
				Value: item,
				Stage: StageValidate,
				Cause: err,
			}
		}
	}

	return newValue(m.Multi, items), nil
}
