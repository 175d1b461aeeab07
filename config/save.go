// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/z5labs/iniconf/config/key"
	"github.com/z5labs/iniconf/internal/try"
	"github.com/z5labs/iniconf/pkg/slogfield"

	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/afero"
)

const (
	commentWidth  = 70
	commentPrefix = "# "
)

// Save writes every stored value back to the backing file, grouped
// by section and annotated with the declared usage and options.
//
// The file is replaced atomically: a sibling temporary file is
// written first and then renamed over the original. Nothing is written
// if any value can not be read back unchanged.
func (c *Config) Save() error {
	var buf bytes.Buffer
	_, err := c.WriteTo(&buf)
	if err != nil {
		c.log.Error("failed to render config", slogfield.String("path", c.path), slogfield.Error(err))
		return err
	}

	err = writeFile(c.fs, c.path, buf.Bytes())
	if err != nil {
		c.log.Error("failed to save config", slogfield.String("path", c.path), slogfield.Error(err))
		return SaveError{Path: c.path, Cause: err}
	}
	return nil
}

// WriteTo implements the io.WriterTo interface. It renders the config
// in exactly the form Save writes to disk. Every failure is a [SaveError];
// a value which would not load back unchanged fails with an
// [UnsafeValueError] cause before anything is written to w.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	var sections []string
	bySection := make(map[string][]key.Key)
	for _, k := range c.schema.keys {
		section := k.Section()
		if _, seen := bySection[section]; !seen {
			sections = append(sections, section)
		}
		bySection[section] = append(bySection[section], k)
	}

	var sb strings.Builder
	for _, section := range sections {
		fmt.Fprintf(&sb, "\n[%s]", section)
		for _, k := range bySection[section] {
			v := c.values[k].String()
			err := checkValue(k, v)
			if err != nil {
				return 0, SaveError{Path: c.path, Cause: err}
			}
			fmt.Fprintf(&sb, "\n%s\n%s=%s\n", comment(c.schema.meta[k]), k.Name(), v)
		}
	}

	n, err := io.WriteString(w, sb.String())
	if err != nil {
		return int64(n), SaveError{Path: c.path, Cause: err}
	}
	return int64(n), nil
}

// checkValue mirrors how the INI reader treats a value: the line ends
// the value, surrounding whitespace is trimmed, and a leading backtick
// or triple double quote starts a quoted, possibly multi line, value.
func checkValue(k key.Key, v string) error {
	var reason string
	switch {
	case strings.ContainsAny(v, "\r\n"):
		reason = "contains a line break"
	case strings.TrimSpace(v) != v:
		reason = "has leading or trailing whitespace"
	case strings.HasPrefix(v, "`"):
		reason = "starts with a backtick"
	case len(v) > 3 && strings.HasPrefix(v, `"""`):
		reason = "starts with a triple quote"
	default:
		return nil
	}
	return UnsafeValueError{Key: k, Value: v, Reason: reason}
}

func comment(m Metadata) string {
	lines := wrap(m.Usage)
	if len(m.Options) > 0 {
		lines = append(lines, wrap("Valid values: "+strings.Join(m.Options, ", "))...)
	}
	return strings.Join(lines, "\n")
}

// wrap never breaks words longer than the comment width.
func wrap(s string) []string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return nil
	}

	lines := strings.Split(wordwrap.WrapString(s, commentWidth-uint(len(commentPrefix))), "\n")
	for i, line := range lines {
		lines[i] = commentPrefix + line
	}
	return lines
}

func writeFile(fs afero.Fs, path string, b []byte) (err error) {
	tmp, err := afero.TempFile(fs, filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			fs.Remove(tmp.Name())
		}
	}()

	err = writeAndClose(tmp, b)
	if err != nil {
		return err
	}

	if info, serr := fs.Stat(path); serr == nil {
		err = fs.Chmod(tmp.Name(), info.Mode().Perm())
		if err != nil {
			return err
		}
	}
	return fs.Rename(tmp.Name(), path)
}

func writeAndClose(f afero.File, b []byte) (err error) {
	defer try.Close(&err, f)

	_, err = f.Write(b)
	if err != nil {
		return err
	}
	return f.Sync()
}
