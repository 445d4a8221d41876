// Package migrations embeds the SQL migration set so the binary can migrate a
// database without a checkout of this directory.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed *.sql
var FS embed.FS

//go:embed seed/*.sql
var seedFiles embed.FS

// SeedFS holds the demonstration data applied by `migrate seed`. It is kept
// out of FS so `migrate up` never installs the demo staff.
var SeedFS = mustSub(seedFiles, "seed")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
