// Package migrations embeds the SQL migrations of the export schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
