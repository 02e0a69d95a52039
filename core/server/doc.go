// Package server holds the HTTP server configuration.
//
// The start command owns the fiber application; this package only defines where it
// listens and whether the API key middleware is active.
package server
