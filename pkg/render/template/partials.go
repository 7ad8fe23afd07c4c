package template

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Partials flattens a theme selection into logical template name → template
// path overrides. Fallbacks seed the map, manifest templates override them,
// and templates of the selected variant win last. A nil selection returns the
// fallbacks alone.
func Partials(selection *theme.Selection, fallbacks map[string]string) map[string]string {
	out := make(map[string]string, len(fallbacks))
	merge(out, fallbacks)
	if selection == nil || selection.Manifest == nil {
		return out
	}

	manifest := selection.Manifest
	merge(out, manifest.Templates)
	if variant := strings.TrimSpace(selection.Variant); variant != "" {
		if v, ok := manifest.Variants[variant]; ok {
			merge(out, v.Templates)
		}
	}
	return out
}

// Resolve returns the template path for a logical name, falling back to the
// name itself.
func Resolve(partials map[string]string, name string) string {
	if candidate := strings.TrimSpace(partials[name]); candidate != "" {
		return candidate
	}
	return name
}

// Select asks selector for the named theme and flattens the result. A nil
// selector yields the fallbacks.
func Select(selector theme.ThemeSelector, name, variant string, fallbacks map[string]string) (map[string]string, error) {
	if selector == nil {
		return Partials(nil, fallbacks), nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, err
	}
	return Partials(selection, fallbacks), nil
}

func merge(dst, src map[string]string) {
	for key, value := range src {
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		dst[key] = value
	}
}
