package web

import (
	"embed"
	"io/fs"
)

//go:embed all:dist
var dist embed.FS

// Assets returns the embedded frontend bundle served for non-API paths.
func Assets() fs.FS {
	sub, _ := fs.Sub(dist, "dist")
	return sub
}
