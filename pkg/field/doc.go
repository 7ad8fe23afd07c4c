// Package field holds the per-field state the editors bind to: the current
// value, the default it falls back to, and whether the value was explicitly
// set. Models notify subscribers synchronously on every Set and Clear so the
// bound editor re-renders before the call returns.
package field
