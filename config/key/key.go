// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package key provides the fully qualified key type used to address config parameters.
package key

import (
	"fmt"
	"strings"
)

// Separator joins the section and name halves of a [Key].
const Separator = "/"

// Key identifies a single config parameter as "<section>/<name>".
type Key string

// New joins the given section and name into a [Key].
func New(section, name string) Key {
	return Key(section + Separator + name)
}

// InvalidKeyError occurs when a string does not have the "<section>/<name>" shape.
type InvalidKeyError struct {
	Key string
}

// Error implements the error interface.
func (e InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid key %q: expected <section>/<name>", e.Key)
}

// Parse validates s and returns it as a [Key].
// Only the first separator is significant, so the name may itself contain one.
func Parse(s string) (Key, error) {
	k := Key(s)
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

// Validate reports whether both halves of the key are non-empty.
func (k Key) Validate() error {
	section, name, ok := strings.Cut(string(k), Separator)
	if !ok || section == "" || name == "" {
		return InvalidKeyError{Key: string(k)}
	}
	return nil
}

// Section returns everything before the first separator.
func (k Key) Section() string {
	section, _, _ := strings.Cut(string(k), Separator)
	return section
}

// Name returns everything after the first separator.
func (k Key) Name() string {
	_, name, _ := strings.Cut(string(k), Separator)
	return name
}

// String implements the fmt.Stringer interface.
func (k Key) String() string {
	return string(k)
}
