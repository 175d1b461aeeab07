// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package maskslog

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type record struct {
	Message string            `json:"msg"`
	Key     string            `json:"key"`
	Value   string            `json:"value"`
	Group   map[string]string `json:"group"`
}

func decode(t *testing.T, buf *bytes.Buffer) (record, bool) {
	var r record
	err := json.Unmarshal(buf.Bytes(), &r)
	return r, assert.Nil(t, err)
}

func TestHandler_Handle(t *testing.T) {
	t.Run("will not mask attrs", func(t *testing.T) {
		t.Run("if no keys are given", func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(NewHandler(slog.NewJSONHandler(&buf, nil)))

			logger.Info("hello world", slog.String("value", "secret"))

			r, ok := decode(t, &buf)
			if !ok {
				return
			}
			if !assert.Equal(t, "hello world", r.Message) {
				return
			}
			assert.Equal(t, "secret", r.Value)
		})

		t.Run("if the attr key does not match", func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(NewHandler(slog.NewJSONHandler(&buf, nil), "value"))

			logger.Info("hello world", slog.String("key", "general/password"))

			r, ok := decode(t, &buf)
			if !ok {
				return
			}
			assert.Equal(t, "general/password", r.Key)
		})
	})

	t.Run("will mask attrs", func(t *testing.T) {
		t.Run("if the attr key matches", func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(NewHandler(slog.NewJSONHandler(&buf, nil), "value"))

			logger.Info("hello world", slog.String("key", "general/password"), slog.Int("value", 42))

			r, ok := decode(t, &buf)
			if !ok {
				return
			}
			if !assert.Equal(t, "general/password", r.Key) {
				return
			}
			assert.Equal(t, Mask, r.Value)
		})

		t.Run("if the attr is inside a group", func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(NewHandler(slog.NewJSONHandler(&buf, nil), "value"))

			logger.Info("hello world", slog.Group("group", slog.String("value", "secret")))

			r, ok := decode(t, &buf)
			if !ok {
				return
			}
			assert.Equal(t, Mask, r.Group["value"])
		})
	})
}

func TestHandler_WithAttrs(t *testing.T) {
	t.Run("will mask attrs", func(t *testing.T) {
		t.Run("if the attr key matches", func(t *testing.T) {
			var buf bytes.Buffer
			var h slog.Handler = NewHandler(slog.NewJSONHandler(&buf, nil), "value")
			h = h.WithAttrs([]slog.Attr{slog.String("value", "secret")})

			slog.New(h).Info("hello world")

			r, ok := decode(t, &buf)
			if !ok {
				return
			}
			assert.Equal(t, Mask, r.Value)
		})

		t.Run("if attrs are added after a group is opened", func(t *testing.T) {
			var buf bytes.Buffer
			var h slog.Handler = NewHandler(slog.NewJSONHandler(&buf, nil), "value")
			h = h.WithGroup("group")

			slog.New(h).Info("hello world", slog.String("value", "secret"))

			r, ok := decode(t, &buf)
			if !ok {
				return
			}
			assert.Equal(t, Mask, r.Group["value"])
		})
	})
}
