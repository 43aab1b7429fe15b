// Package migrations carries the embedded SQL schema migrations applied with
// goose at startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
