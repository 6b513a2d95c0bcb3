// Package migrations embeds the goose SQL migrations so the binaries can
// migrate on startup regardless of the working directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
