// Package session implements the password gate endpoints.
//
// Routes under Prefix are public; the handlers check credentials themselves.
//
// # HTTP Endpoints
//
//   - POST /session/login : Exchange the admin password for a bearer token.
//   - GET  /session/status : Report whether the request is authenticated.
package session
