package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Host is the interface the server binds to. Empty means all interfaces.
	Host string `mapstructure:"host" default:""`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
}

// ListenAddr returns the address passed to the HTTP listener.
func (c Config) ListenAddr() string {
	return c.Host + ":" + strings.TrimPrefix(c.Port, ":")
}

// AuthEnabled reports whether requests must carry the API key.
func (c Config) AuthEnabled() bool {
	return strings.TrimSpace(c.ApiKey) != ""
}
