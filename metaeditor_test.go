package metaeditor

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-metaeditor/pkg/component"
	"github.com/goliatone/go-metaeditor/pkg/panel"
	"github.com/goliatone/go-metaeditor/pkg/schema"
	"github.com/goliatone/go-metaeditor/pkg/synclink"
	"github.com/goliatone/go-metaeditor/pkg/testsupport"
)

func TestEmbeddedTemplatesContainEntryTemplates(t *testing.T) {
	for _, name := range []string{
		"metadata-editor.tpl",
		"transcripts-metadata-string-entry.tpl",
		"transcripts-metadata-list-entry.tpl",
		"metadata-option-entry.tpl",
	} {
		if _, err := fs.ReadFile(EmbeddedTemplates(), name); err != nil {
			t.Fatalf("expected %s to be embedded: %v", name, err)
		}
	}
}

func TestNewTranscriptsEditorLinksSharedFields(t *testing.T) {
	editor, err := NewTranscriptsEditor(
		testsupport.FixtureBytes(t, testsupport.MetadataFixture),
		testsupport.FixtureBytes(t, testsupport.TranscriptsFixture),
		component.WithPanelOptions(panel.WithTemplates(testsupport.NewEngine(t))),
	)
	if err != nil {
		t.Fatalf("editor: %v", err)
	}
	defer editor.Close()

	var sources []string
	for _, link := range editor.Network().Links() {
		if !link.Mirror {
			t.Fatalf("transcripts links should mirror: %+v", link)
		}
		sources = append(sources, link.Source.String())
	}
	if diff := cmp.Diff([]string{"transcripts/sub", "transcripts/transcripts"}, sources); diff != "" {
		t.Fatalf("links mismatch (-want +got):\n%s", diff)
	}

	basic, _ := editor.Panel(TranscriptsPanel)
	sub, _ := basic.Editor("sub")
	sub.Slot().Type(0, "X")
	sub.Slot().Commit(0)

	meta, _ := editor.Panel(MetadataPanel)
	if got, _ := meta.Model("sub"); got.Value() != "X" {
		t.Fatalf("metadata sub = %v, want X", got.Value())
	}
}

func TestNewTranscriptsEditorRejectsMalformedPayloads(t *testing.T) {
	if _, err := NewTranscriptsEditor([]byte(`{`), []byte(`{}`)); err == nil {
		t.Fatalf("expected metadata parse error")
	}
	if _, err := NewTranscriptsEditor([]byte(`{}`), []byte(`[]`)); err == nil {
		t.Fatalf("expected transcripts parse error")
	}
}

func TestLoadTranscriptsEditorFromFiles(t *testing.T) {
	dir := t.TempDir()
	metaPath := filepath.Join(dir, "metadata.json")
	basicPath := filepath.Join(dir, "transcripts.yaml")
	if err := os.WriteFile(metaPath, testsupport.FixtureBytes(t, testsupport.MetadataFixture), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(basicPath, []byte("sub:\n  type: String\n  display_name: Timed Transcript\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	editor, err := LoadTranscriptsEditor(context.Background(), NewLoader(),
		schema.SourceFromFile(metaPath), schema.SourceFromFile(basicPath),
		component.WithPanelOptions(panel.WithTemplates(testsupport.NewEngine(t))),
	)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer editor.Close()

	links := editor.Network().Links()
	want := synclink.Address{Panel: MetadataPanel, Field: "sub"}
	if len(links) != 1 || links[0].Targets[0].Address != want {
		t.Fatalf("links = %+v", links)
	}
}
