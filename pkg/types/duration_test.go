package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestDurationParse(t *testing.T) {
	type A struct {
		Duration Duration `json:"duration" yaml:"duration"`
	}

	type testcase struct {
		name     string
		input    string
		expected Duration
	}

	var tests = []testcase{
		{
			name:     "int to second",
			input:    `{ "duration": 1 }`,
			expected: Duration(time.Second),
		},
		{
			name:     "float64 to second",
			input:    `{ "duration": 1.5 }`,
			expected: Duration(time.Second + 500*time.Millisecond),
		},
		{
			name:     "2m",
			input:    `{ "duration": "2m" }`,
			expected: Duration(2 * time.Minute),
		},
		{
			name:     "4m10s",
			input:    `{ "duration": "4m10s" }`,
			expected: Duration(4*time.Minute + 10*time.Second),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var a A
			err := json.Unmarshal([]byte(test.input), &a)
			assert.NoError(t, err)
			assert.Equal(t, test.expected, a.Duration)

			var b A
			err = yaml.Unmarshal([]byte(test.input), &b)
			assert.NoError(t, err)
			assert.Equal(t, test.expected, b.Duration)
		})
	}
}
