// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"io"
	"log/slog"

	"github.com/z5labs/iniconf/config/key"
	"github.com/z5labs/iniconf/internal/try"
	"github.com/z5labs/iniconf/pkg/noop"
	"github.com/z5labs/iniconf/pkg/slogfield"

	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

type options struct {
	fs         afero.Fs
	logHandler slog.Handler
}

// Option configures a [Config] at load time.
type Option func(*options)

// FS sets the filesystem the config file is read from and saved to.
//
// Default is the OS filesystem.
func FS(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// LogHandler sets the slog.Handler which receives debug events
// emitted by the value pipeline.
//
// Default discards everything.
func LogHandler(h slog.Handler) Option {
	return func(o *options) {
		o.logHandler = h
	}
}

// Config is the validated view over an INI file as described by a [Schema].
//
// A Config is not safe for concurrent use.
type Config struct {
	path   string
	fs     afero.Fs
	log    *slog.Logger
	schema *Schema
	values map[key.Key]Value
}

// Load reads the INI file at path and runs every key declared in schema
// through the value pipeline. Keys missing from the file fall back to
// their declared default. Any failure aborts the whole load.
func Load(path string, schema *Schema, opts ...Option) (*Config, error) {
	o := &options{
		fs:         afero.NewOsFs(),
		logHandler: noop.LogHandler{},
	}
	for _, opt := range opts {
		opt(o)
	}
	if schema == nil {
		schema = MustSchema()
	}

	f, err := readIni(o.fs, path)
	if err != nil {
		return nil, LoadError{Path: path, Cause: err}
	}

	c := &Config{
		path:   path,
		fs:     o.fs,
		log:    slog.New(o.logHandler),
		schema: schema,
		values: make(map[key.Key]Value, schema.Len()),
	}

	raws := make(map[key.Key]string, schema.Len())
	for _, k := range schema.keys {
		m := schema.meta[k]
		raw, found := lookup(f, k)
		if !found {
			raw = m.Default
		}
		raws[k] = raw

		// later keys are visible to earlier processors in split but
		// otherwise unprocessed form
		c.values[k] = newValue(m.Multi, split(m.Multi, raw))
	}

	for _, k := range schema.keys {
		v, err := c.pipeline(k, schema.meta[k], raws[k])
		if err != nil {
			return nil, err
		}
		c.values[k] = v
	}
	return c, nil
}

func readIni(fs afero.Fs, path string) (_ *ini.File, err error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer try.Close(&err, f)

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:         true,
		IgnoreInlineComment:     true,
		IgnoreContinuation:      true,
		PreserveSurroundedQuote: true,
	}, b)
}

func lookup(f *ini.File, k key.Key) (string, bool) {
	sec, err := f.GetSection(k.Section())
	if err != nil {
		return "", false
	}
	if !sec.HasKey(k.Name()) {
		return "", false
	}
	return sec.Key(k.Name()).Value(), true
}

// Path returns the path of the backing file.
func (c *Config) Path() string {
	return c.path
}

// Schema returns the schema the Config was loaded with.
func (c *Config) Schema() *Schema {
	return c.schema
}

// Get returns the stored value for k without validating it again.
func (c *Config) Get(k key.Key) (Value, error) {
	v, ok := c.values[k]
	if !ok {
		return Value{}, UnknownKeyError{Key: k}
	}
	return Value{multi: v.multi, items: v.Strings()}, nil
}

// Set runs raw through the value pipeline of k and stores the result.
// On failure the previously stored value is kept.
func (c *Config) Set(k key.Key, raw string) error {
	m, ok := c.schema.meta[k]
	if !ok {
		return UnknownKeyError{Key: k}
	}

	v, err := c.pipeline(k, m, raw)
	if err != nil {
		c.log.Debug("rejected new value", slogfield.Key(k), slogfield.Error(err))
		return err
	}
	c.values[k] = v
	return nil
}

// GetValidated runs the currently stored value of k through the value
// pipeline again and returns the result. The stored value is not changed.
//
// This is useful when processors or validators depend on other keys
// which may have been Set since k was last validated.
func (c *Config) GetValidated(k key.Key) (Value, error) {
	m, ok := c.schema.meta[k]
	if !ok {
		return Value{}, UnknownKeyError{Key: k}
	}
	return c.pipeline(k, m, c.values[k].String())
}

// Contains reports whether k is declared in the schema.
func (c *Config) Contains(k key.Key) bool {
	_, ok := c.schema.meta[k]
	return ok
}

// Keys returns every declared key in declaration order.
func (c *Config) Keys() []key.Key {
	return c.schema.Keys()
}

// Values returns every stored value in declaration order.
func (c *Config) Values() []Value {
	vs := make([]Value, 0, len(c.schema.keys))
	for _, k := range c.schema.keys {
		v, _ := c.Get(k)
		vs = append(vs, v)
	}
	return vs
}

// Items returns every key with its stored value in declaration order.
func (c *Config) Items() []Item {
	items := make([]Item, 0, len(c.schema.keys))
	for _, k := range c.schema.keys {
		v, _ := c.Get(k)
		items = append(items, Item{Key: k, Value: v})
	}
	return items
}

// Meta returns the metadata declared for k.
func (c *Config) Meta(k key.Key) (Metadata, error) {
	m, ok := c.schema.Lookup(k)
	if !ok {
		return Metadata{}, UnknownKeyError{Key: k}
	}
	return m, nil
}

type readOnly struct {
	c *Config
}

func (r readOnly) Get(k key.Key) (Value, error) { return r.c.Get(k) }
func (r readOnly) Contains(k key.Key) bool      { return r.c.Contains(k) }
