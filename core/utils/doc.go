// Package utils provides common utility functions for the kb-admin application.
// It includes scalar conversion helpers, most importantly the canonical text form
// of record identifiers, which arrive as numbers or strings depending on the source.
package utils
