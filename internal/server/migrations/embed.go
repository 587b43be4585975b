// Package migrations embeds the goose SQL migrations for the lending schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
