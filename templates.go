package metaeditor

import (
	"io/fs"

	"github.com/goliatone/go-metaeditor/pkg/render/templates"
)

// EmbeddedTemplates exposes the built-in panel and entry templates so callers
// can copy or extend them without importing the templates package.
func EmbeddedTemplates() fs.FS {
	return templates.FS()
}
