// Package auth implements the authentication gate in front of the admin console.
//
// A single admin password, stored as a bcrypt hash, is exchanged for an HS256 session
// token at POST /session/login. The HTTP middleware accepts either that token as a
// bearer credential or the static server API key.
package auth
