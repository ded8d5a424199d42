package server

import (
	"fmt"
	"time"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is a static secret accepted in the X-API-Key header.
	ApiKey string `mapstructure:"api_key" default:""`
	// Timezone is the IANA zone upload stamps are written in.
	Timezone string `mapstructure:"timezone" default:"Asia/Shanghai"`
}

// Location resolves the configured timezone. An empty value means UTC.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid server timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
