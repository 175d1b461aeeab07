// Copyright (c) 2023 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package slogfield

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/z5labs/iniconf/config/key"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	t.Run("will always use the key attribute name", func(t *testing.T) {
		attr := Key(key.New("general", "debug"))
		if !assert.Equal(t, "key", attr.Key) {
			return
		}
		assert.Equal(t, "general/debug", attr.Value.String())
	})
}

func TestError(t *testing.T) {
	t.Run("will use the error attribute name", func(t *testing.T) {
		err := errors.New("boom")
		attr := Error(err)
		if !assert.Equal(t, "error", attr.Key) {
			return
		}
		if !assert.Equal(t, slog.KindAny, attr.Value.Kind()) {
			return
		}
		assert.Equal(t, err, attr.Value.Any())
	})
}
