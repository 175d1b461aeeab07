// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		testCases := []struct {
			Name string
			Key  string
		}{
			{Name: "if the key is empty", Key: ""},
			{Name: "if the key has no separator", Key: "general"},
			{Name: "if the section is empty", Key: "/name"},
			{Name: "if the name is empty", Key: "general/"},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Name, func(t *testing.T) {
				_, err := Parse(testCase.Key)

				var ierr InvalidKeyError
				if !assert.ErrorAs(t, err, &ierr) {
					return
				}
				if !assert.Equal(t, testCase.Key, ierr.Key) {
					return
				}
				assert.NotEmpty(t, ierr.Error())
			})
		}
	})

	t.Run("will only split on the first separator", func(t *testing.T) {
		k, err := Parse("general/nested/name")
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, "general", k.Section()) {
			return
		}
		assert.Equal(t, "nested/name", k.Name())
	})
}

func TestNew(t *testing.T) {
	t.Run("will join section and name", func(t *testing.T) {
		k := New("general", "log_level")
		if !assert.Equal(t, Key("general/log_level"), k) {
			return
		}
		assert.Nil(t, k.Validate())
	})
}
