// Package migrations embeds the goose SQL files so a single binary can
// bring the schema up to date at boot.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
