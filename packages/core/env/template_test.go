package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		vars     Vars
		expected string
	}{
		{
			name:     "no placeholders",
			input:    "hello world",
			vars:     Vars{"name": "x"},
			expected: "hello world",
		},
		{
			name:     "known placeholders",
			input:    "Hello ${name}, token=${token}",
			vars:     Vars{"name": "Enzo", "token": "1234"},
			expected: "Hello Enzo, token=1234",
		},
		{
			name:     "unknown placeholder stays as-is",
			input:    "Hello ${name}",
			vars:     Vars{},
			expected: "Hello ${name}",
		},
		{
			name:     "mixed known and unknown",
			input:    "${a}-${b}-${a}",
			vars:     Vars{"a": "1"},
			expected: "1-${b}-1",
		},
		{
			name:     "no recursive substitution",
			input:    "${outer}",
			vars:     Vars{"outer": "${inner}", "inner": "nope"},
			expected: "${inner}",
		},
		{
			name:     "invalid identifier is not a placeholder",
			input:    "${not-valid} ${ spaced }",
			vars:     Vars{"not-valid": "x", "spaced": "y"},
			expected: "${not-valid} ${ spaced }",
		},
		{
			name:     "digits and underscores",
			input:    "/users/${user_1}/${2fa}",
			vars:     Vars{"user_1": "42", "2fa": "on"},
			expected: "/users/42/on",
		},
		{
			name:     "empty value",
			input:    "a${empty}b",
			vars:     Vars{"empty": ""},
			expected: "ab",
		},
		{
			name:     "json body",
			input:    `{"user":"${user}","n":${n}}`,
			vars:     Vars{"user": "bob", "n": "3"},
			expected: `{"user":"bob","n":3}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Render(tt.input, tt.vars))
		})
	}
}

func TestRenderIdempotentWithoutResolvablePlaceholders(t *testing.T) {
	input := "GET ${missing} {{other}} $plain"
	once := Render(input, Vars{"x": "1"})
	twice := Render(once, Vars{"x": "1"})

	assert.Equal(t, input, once)
	assert.Equal(t, once, twice)
}

func TestUnresolved(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		vars     Vars
		expected []string
	}{
		{"none", "plain", nil, nil},
		{"all resolved", "${a}${b}", Vars{"a": "", "b": ""}, nil},
		{"single", "${a}", nil, []string{"a"}},
		{"dedup in order", "${b} ${a} ${b}", Vars{}, []string{"b", "a"}},
		{"mixed", "${a} ${b} ${c}", Vars{"b": "x"}, []string{"a", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Unresolved(tt.input, tt.vars))
		})
	}
}
