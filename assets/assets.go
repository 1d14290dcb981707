// Package assets bundles the note samples shipped with pianopad
package assets

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed *.wav
var files embed.FS

// FS returns the embedded samples
func FS() fs.FS {
	return files
}

// Open returns the samples from dir, or the embedded set when dir is empty
func Open(dir string) fs.FS {
	if dir == "" {
		return files
	}
	return os.DirFS(dir)
}
