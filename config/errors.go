// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"
	"strings"

	"github.com/z5labs/iniconf/config/key"
)

// LoadError occurs when the backing file can not be read or is not valid INI.
type LoadError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e LoadError) Error() string {
	return fmt.Sprintf("failed to parse config file %s: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e LoadError) Unwrap() error {
	return e.Cause
}

// UnknownKeyError occurs when a key is referenced which was never declared in the [Schema].
type UnknownKeyError struct {
	Key key.Key
}

// Error implements the error interface.
func (e UnknownKeyError) Error() string {
	return fmt.Sprintf("given key %s does not exist in schema", e.Key)
}

// DuplicateKeyError occurs when a [Schema] declares the same key more than once.
type DuplicateKeyError struct {
	Key key.Key
}

// Error implements the error interface.
func (e DuplicateKeyError) Error() string {
	return fmt.Sprintf("key declared more than once in schema: %s", e.Key)
}

// Stage names the step of the value pipeline which rejected a value.
type Stage string

const (
	StageProcess  Stage = "process"
	StageOptions  Stage = "options"
	StageValidate Stage = "validate"
)

// ValidationError occurs when a value is rejected by the value pipeline.
type ValidationError struct {
	Key   key.Key
	Value string
	Stage Stage

	// Options is only set for StageOptions failures.
	Options []string

	// Cause is the error returned by the failing Processor or Validator.
	Cause error
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	switch e.Stage {
	case StageOptions:
		return fmt.Sprintf(
			"value of parameter %s is not from valid values [%s]: %q",
			e.Key,
			strings.Join(e.Options, ", "),
			e.Value,
		)
	case StageProcess:
		return fmt.Sprintf("failed to process value %q of parameter %s: %s", e.Value, e.Key, e.Cause)
	default:
		return fmt.Sprintf("parameter %s failed validation of value %q: %s", e.Key, e.Value, e.Cause)
	}
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e ValidationError) Unwrap() error {
	return e.Cause
}

// SaveError occurs when the rendered config can not be written back to its path.
type SaveError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e SaveError) Error() string {
	return fmt.Sprintf("failed to save config file %s: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e SaveError) Unwrap() error {
	return e.Cause
}

// UnsafeValueError occurs when a stored value can not be written to the
// INI file in a form which loads back into the same value.
type UnsafeValueError struct {
	Key    key.Key
	Value  string
	Reason string
}

// Error implements the error interface.
func (e UnsafeValueError) Error() string {
	return fmt.Sprintf("value %q of parameter %s can not be saved: %s", e.Value, e.Key, e.Reason)
}

// SplitItemError occurs when a processor turns an item of a multi value
// into text which would not split back into that same single item, e.g.
// by adding a separator.
type SplitItemError struct {
	Item string
}

// Error implements the error interface.
func (e SplitItemError) Error() string {
	return fmt.Sprintf("processed item %q does not split back into a single item", e.Item)
}
