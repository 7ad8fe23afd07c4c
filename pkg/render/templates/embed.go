// Package templates embeds the built-in editor templates.
package templates

import (
	"embed"
	"io/fs"
)

//go:embed *.tpl
var embedded embed.FS

// Extension is the file suffix of the embedded templates.
const Extension = ".tpl"

// FS exposes the embedded template bundle.
func FS() fs.FS {
	return embedded
}
