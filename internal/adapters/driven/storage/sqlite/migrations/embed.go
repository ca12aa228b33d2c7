// Package migrations holds the numbered SQL schema steps for the SQLite store.
// Files are named NNN_description.up.sql with a matching .down.sql.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
