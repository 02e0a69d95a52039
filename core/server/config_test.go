package server_test

import (
	"testing"

	"catalog-sync/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ListenAddr(t *testing.T) {
	tests := []struct {
		name string
		cfg  server.Config
		want string
	}{
		{"Port only", server.Config{Port: "8080"}, ":8080"},
		{"Port with colon", server.Config{Port: ":9090"}, ":9090"},
		{"Host and port", server.Config{Host: "127.0.0.1", Port: "8080"}, "127.0.0.1:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.ListenAddr())
		})
	}
}

func TestConfig_AuthEnabled(t *testing.T) {
	assert.True(t, server.Config{ApiKey: "secret"}.AuthEnabled())
	assert.False(t, server.Config{ApiKey: ""}.AuthEnabled())
	assert.False(t, server.Config{ApiKey: "   "}.AuthEnabled())
}
