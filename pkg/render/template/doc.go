// Package template defines the templating seam editors render through and the
// helpers that shape template input: theme partial resolution and help text
// sanitising. Engines live in subpackages; gotemplate is the pongo2-backed
// default.
package template
