package labels

import (
	"embed"
	"io/fs"
)

//go:embed defaults
var defaultFS embed.FS

// Defaults returns the label directory shipped with the binary.
func Defaults() fs.FS {
	sub, err := fs.Sub(defaultFS, "defaults")
	if err != nil {
		panic(err)
	}
	return sub
}
