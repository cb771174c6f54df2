// Package migrations embeds the SQL migrations applied by goose when the
// postgres backend starts.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
