package gotemplate

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-metaeditor/pkg/render/template"
)

func TestEngineRendersEmbeddedStringEntry(t *testing.T) {
	engine, err := NewDefault()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	var buf bytes.Buffer
	html, err := engine.RenderTemplate(template.NameStringEntry, map[string]any{
		"uniqueId":   "transcripts-metadata-string-entry_1",
		"value":      `<b>"quoted"</b>`,
		"clearState": "active",
		"model": map[string]any{
			"displayName": "Display Name",
			"help":        "",
		},
	}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if buf.String() != html {
		t.Fatalf("writer output differs from returned markup")
	}
	for _, want := range []string{
		`id="transcripts-metadata-string-entry_1"`,
		`setting-clear active`,
		`Display Name`,
		`&lt;b&gt;`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("markup missing %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, "setting-help") {
		t.Fatalf("empty help should not render a tip:\n%s", html)
	}
}

func TestEngineMissingTemplate(t *testing.T) {
	engine, err := NewDefault()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := engine.RenderTemplate("does-not-exist", nil); err == nil {
		t.Fatalf("expected missing template error")
	}
}

func TestEngineFSOverridesAreConsultedInOrder(t *testing.T) {
	override := fstest.MapFS{
		"metadata-editor.tpl": &fstest.MapFile{Data: []byte(`custom {{ numEntries }}`)},
	}
	engine, err := New(WithFS(override), WithFS(nil))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	html, err := engine.Render(template.NamePanel, map[string]any{"numEntries": 3})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if html != "custom 3" {
		t.Fatalf("html = %q, want override", html)
	}
}

func TestEngineRenderStringAndGlobals(t *testing.T) {
	engine, err := NewDefault(WithGlobalData(map[string]any{"site": "studio"}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	html, err := engine.Render("{{ site }}/{{ name|trim }}", map[string]any{"name": "  video  "})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if html != "studio/video" {
		t.Fatalf("html = %q", html)
	}
}

func TestEngineStructDataUsesJSONKeys(t *testing.T) {
	engine, err := NewDefault()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	data := struct {
		Label string `json:"label"`
	}{Label: "Transcript"}

	html, err := engine.RenderString("{{ label }}", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if html != "Transcript" {
		t.Fatalf("html = %q", html)
	}
}

func TestEngineRegisterFilterOnce(t *testing.T) {
	engine, err := NewDefault()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	shout := func(input any, _ any) (any, error) {
		s, _ := input.(string)
		return strings.ToUpper(s) + "!", nil
	}

	if err := engine.RegisterFilter("metaeditor_shout", shout); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := engine.RegisterFilter("metaeditor_shout", shout); !errors.Is(err, errFilterExists) {
		t.Fatalf("second register err = %v, want errFilterExists", err)
	}

	html, err := engine.RenderString("{{ name|metaeditor_shout }}", map[string]any{"name": "sub"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if html != "SUB!" {
		t.Fatalf("html = %q", html)
	}
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error without template sources")
	}
}
