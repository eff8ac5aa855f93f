// Package migrations embeds the SQL migrations for the client-side
// session database, applied with goose on startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
