// Package migrations contains embedded SQL migrations for the SQLite store.
// Every statement is additive so reapplying against an existing file never
// drops data.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
