package metaeditor

import "github.com/goliatone/go-metaeditor/pkg/schema"

// NewLoader constructs a payload loader for files, fs.FS entries and URLs.
func NewLoader(options ...schema.LoaderOption) *schema.Loader {
	return schema.NewLoader(options...)
}
