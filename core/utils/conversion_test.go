package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"abc", "abc"},
		{[]byte("xyz"), "xyz"},
		{json.Number("12345678901"), "12345678901"},
		{42, "42"},
		{true, "true"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToString(tt.in))
	}
}
