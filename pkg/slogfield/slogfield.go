// Copyright (c) 2023 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package slogfield provides consistently named slog.Attr constructors.
package slogfield

import (
	"log/slog"

	"github.com/z5labs/iniconf/config/key"
)

// Error returns an slog.Attr for a error.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

// String returns an slog.Attr for a string.
func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

// Strings returns an slog.Attr for a slice of strings.
func Strings(key string, values []string) slog.Attr {
	return slog.Any(key, values)
}

// Key returns an slog.Attr for a config key, always under the name "key".
func Key(k key.Key) slog.Attr {
	return slog.String("key", k.String())
}
