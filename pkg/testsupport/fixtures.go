// Package testsupport holds fixtures and helpers shared by package tests.
package testsupport

import (
	"bytes"
	"embed"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-metaeditor/pkg/render/template/gotemplate"
	"github.com/goliatone/go-metaeditor/pkg/schema"
)

//go:embed testdata/*.json
var fixtures embed.FS

// Fixture names.
const (
	MetadataFixture    = "metadata.json"
	TranscriptsFixture = "transcripts.json"
)

// FixtureBytes returns the raw fixture payload.
func FixtureBytes(t testing.TB, name string) []byte {
	t.Helper()
	data, err := fixtures.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}

// MustPayload parses a JSON fixture.
func MustPayload(t testing.TB, name string) schema.Payload {
	t.Helper()
	payload, err := schema.ParseJSON(FixtureBytes(t, name))
	if err != nil {
		t.Fatalf("parse fixture %s: %v", name, err)
	}
	return payload
}

// NewEngine builds the default template engine.
func NewEngine(t testing.TB) *gotemplate.Engine {
	t.Helper()
	engine, err := gotemplate.NewDefault()
	if err != nil {
		t.Fatalf("template engine: %v", err)
	}
	return engine
}

// CaptureLogs returns a debug level text logger writing into the buffer.
func CaptureLogs() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, &buf
}

// StubThemeSelector returns a fixed selection and counts calls.
type StubThemeSelector struct {
	Selection *theme.Selection
	Err       error
	Calls     int
}

// Select implements theme.ThemeSelector.
func (s *StubThemeSelector) Select(_, _ string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Selection, nil
}

// AssertJSONGolden compares the indented JSON of value with the golden file,
// rewriting it first when UPDATE_GOLDENS is set.
func AssertJSONGolden(t testing.TB, path string, value any) {
	t.Helper()

	got, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	got = append(got, '\n')

	if os.Getenv("UPDATE_GOLDENS") != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir golden dir: %v", err)
		}
		if err := os.WriteFile(path, got, 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Fatalf("%s mismatch (-want +got):\n%s", filepath.Base(path), diff)
	}
}
