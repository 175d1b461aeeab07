// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	testCases := []struct {
		Name     string
		Multi    bool
		Raw      string
		Expected []string
	}{
		{Name: "scalar is kept verbatim", Raw: " a, b ", Expected: []string{" a, b "}},
		{Name: "empty scalar is a single empty item", Raw: "", Expected: []string{""}},
		{Name: "multi is trimmed", Multi: true, Raw: " a , b,c ", Expected: []string{"a", "b", "c"}},
		{Name: "multi drops empty items", Multi: true, Raw: ",a,, ,b,", Expected: []string{"a", "b"}},
		{Name: "empty multi has no items", Multi: true, Raw: "", Expected: []string{}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			assert.Equal(t, testCase.Expected, split(testCase.Multi, testCase.Raw))
		})
	}
}

func TestValue_String(t *testing.T) {
	t.Run("will join multi values with the separator", func(t *testing.T) {
		assert.Equal(t, "a,b", Multi("a", "b").String())
	})

	t.Run("will return an empty string for an empty multi value", func(t *testing.T) {
		v := Multi()
		if !assert.Equal(t, "", v.String()) {
			return
		}
		assert.Equal(t, []string{}, v.Strings())
	})

	t.Run("will return the zero value as an empty string", func(t *testing.T) {
		assert.Equal(t, "", Value{}.String())
	})
}
