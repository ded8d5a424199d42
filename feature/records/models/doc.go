// Package models declares the managed knowledge-base tables.
//
// Each table has a typed schema (Reports, Standards, ESGMeta) used by the query
// layer, the reconciler and the integrity check, and a gorm row model used to
// seed fixtures.
package models
