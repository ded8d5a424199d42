// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: admits requests carrying the static API key or a valid session token.
//   - rayid: tags every request with a ray id, stored in locals and echoed in the
//     X-Ray-ID response header for tracing.
//
// rayid is registered first so every log line of a request carries its id.
package middleware
