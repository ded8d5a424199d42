// Package server holds the HTTP server configuration.
//
// The Config struct defines the HTTP port, the optional static API key and the
// timezone upload timestamps are rendered in. It is embedded by core/config and
// read by the start command.
package server
