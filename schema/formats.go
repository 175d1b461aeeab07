// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/z5labs/iniconf/config"
	"github.com/z5labs/iniconf/internal/try"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// InvalidYamlError occurs if the underlying io.Reader contains invalid YAML.
type InvalidYamlError struct {
	Cause error
}

// Error implements the error interface.
func (e InvalidYamlError) Error() string {
	return fmt.Sprintf("invalid yaml: %s", e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidYamlError) Unwrap() error {
	return e.Cause
}

// InvalidTomlError occurs if the underlying io.Reader contains invalid TOML.
type InvalidTomlError struct {
	Cause error
}

// Error implements the error interface.
func (e InvalidTomlError) Error() string {
	return fmt.Sprintf("invalid toml: %s", e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidTomlError) Unwrap() error {
	return e.Cause
}

// InvalidJsonError occurs if the underlying io.Reader contains invalid JSON.
type InvalidJsonError struct {
	Cause error
}

// Error implements the error interface.
func (e InvalidJsonError) Error() string {
	return fmt.Sprintf("invalid json: %s", e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidJsonError) Unwrap() error {
	return e.Cause
}

// FromYaml reads a [Document] in YAML format from r.
// If r is also an io.Closer it will be closed.
func FromYaml(r io.Reader) (Document, error) {
	return decodeFrom(r, func(b []byte, m *map[string]any) error {
		err := yaml.Unmarshal(b, m)
		if err != nil {
			return InvalidYamlError{Cause: err}
		}
		return nil
	})
}

// FromToml reads a [Document] in TOML format from r.
// If r is also an io.Closer it will be closed.
func FromToml(r io.Reader) (Document, error) {
	return decodeFrom(r, func(b []byte, m *map[string]any) error {
		err := toml.Unmarshal(b, m)
		if err != nil {
			return InvalidTomlError{Cause: err}
		}
		return nil
	})
}

// FromJson reads a [Document] in JSON format from r.
// If r is also an io.Closer it will be closed.
func FromJson(r io.Reader) (Document, error) {
	return decodeFrom(r, func(b []byte, m *map[string]any) error {
		err := json.Unmarshal(b, m)
		if err != nil {
			return InvalidJsonError{Cause: err}
		}
		return nil
	})
}

func decodeFrom(r io.Reader, unmarshal func([]byte, *map[string]any) error) (_ Document, err error) {
	c, _ := r.(io.Closer)
	defer try.Close(&err, c)

	b, err := io.ReadAll(r)
	if err != nil {
		return Document{}, err
	}

	m := make(map[string]any)
	err = unmarshal(b, &m)
	if err != nil {
		return Document{}, err
	}
	return Decode(m)
}

// UnsupportedFormatError occurs when the format of a schema document
// can not be determined from its file extension.
type UnsupportedFormatError struct {
	Path string
}

// Error implements the error interface.
func (e UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported schema format, expected .yaml, .yml, .toml or .json: %s", e.Path)
}

// Open reads the [Document] at path, choosing the format by file extension.
func Open(fs afero.Fs, path string) (Document, error) {
	var from func(io.Reader) (Document, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		from = FromYaml
	case ".toml":
		from = FromToml
	case ".json":
		from = FromJson
	default:
		return Document{}, UnsupportedFormatError{Path: path}
	}

	f, err := fs.Open(path)
	if err != nil {
		return Document{}, err
	}
	return from(f)
}

// Load is a convenience for opening the document at path and building
// it against c.
func Load(fs afero.Fs, path string, c *Catalog) (*config.Schema, error) {
	doc, err := Open(fs, path)
	if err != nil {
		return nil, err
	}
	return doc.Build(c)
}
