package panel_test

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"
	"pgregory.net/rapid"

	"github.com/goliatone/go-metaeditor/pkg/editor"
	"github.com/goliatone/go-metaeditor/pkg/field"
	"github.com/goliatone/go-metaeditor/pkg/panel"
	"github.com/goliatone/go-metaeditor/pkg/render/template"
	"github.com/goliatone/go-metaeditor/pkg/render/template/gotemplate"
	"github.com/goliatone/go-metaeditor/pkg/schema"
	"github.com/goliatone/go-metaeditor/pkg/synclink"
	"github.com/goliatone/go-metaeditor/pkg/testsupport"
	"github.com/goliatone/go-metaeditor/pkg/view"
)

func newMetadataPanel(t *testing.T, options ...panel.Option) *panel.Panel {
	t.Helper()
	p, err := panel.FromJSON(testsupport.FixtureBytes(t, testsupport.MetadataFixture), options...)
	if err != nil {
		t.Fatalf("panel: %v", err)
	}
	t.Cleanup(p.Close)
	return p
}

func TestPanelBuildsModelsAndEditorsInPayloadOrder(t *testing.T) {
	logger, logs := testsupport.CaptureLogs()
	p := newMetadataPanel(t, panel.WithLogger(logger))

	var names []string
	for _, model := range p.Models() {
		names = append(names, model.Name())
	}
	want := []string{"display_name", "sub", "download_track", "transcripts", "start_time"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("model order mismatch (-want +got):\n%s", diff)
	}

	if len(p.Editors()) != 4 {
		t.Fatalf("editors = %d, want 4 (RelativeTime has no editor)", len(p.Editors()))
	}
	for i, name := range want[:4] {
		ed, ok := p.Editor(name)
		if !ok {
			t.Fatalf("editor %s missing", name)
		}
		if ed.Slot().Index() != i {
			t.Fatalf("editor %s bound to slot %d, want %d", name, ed.Slot().Index(), i)
		}
	}
	if _, ok := p.Editor("start_time"); ok {
		t.Fatalf("unregistered type must not get an editor")
	}
	if _, ok := p.Model("start_time"); !ok {
		t.Fatalf("unregistered type must still be modelled")
	}

	diags := p.Diagnostics()
	if len(diags) != 1 || diags[0].Field != "start_time" || diags[0].Level != slog.LevelDebug {
		t.Fatalf("diagnostics = %v", diags)
	}
	if !strings.Contains(logs.String(), "no editor registered for field type") {
		t.Fatalf("skipped field not logged: %s", logs.String())
	}
}

func TestPanelRender(t *testing.T) {
	p := newMetadataPanel(t)

	html, err := p.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, fragment := range []string{
		`id="metadata_edit"`,
		`data-entries="5"`,
		`id="metadata_entry-0"`,
		`value="Intro lecture"`,
		`Download Transcript Allowed`,
		`Transcript Languages`,
		`<em>Timed Transcript</em>`,
		`id="metadata_entry-4"></li>`,
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("render missing %q:\n%s", fragment, html)
		}
	}
	if !strings.Contains(html, `metadata_entry is-set" id="metadata_entry-0"`) {
		t.Fatalf("explicit entry should carry is-set:\n%s", html)
	}
}

func TestPanelRendersThroughGoTemplateEngine(t *testing.T) {
	engine, err := gotemplate.NewGoTemplate()
	if err != nil {
		t.Fatalf("go-template engine: %v", err)
	}
	p := newMetadataPanel(t, panel.WithTemplates(engine))

	for _, ed := range p.Editors() {
		if ed.Err() != nil {
			t.Fatalf("editor %s degraded: %v", ed.Field().Name(), ed.Err())
		}
	}
	list, _ := p.Editor("transcripts")
	list.Slot().Click(view.ControlAdd, 0)
	list.Slot().Type(0, "en")
	list.Slot().Commit(0)

	html, err := p.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, fragment := range []string{
		`id="metadata_edit"`,
		`data-entries="5"`,
		`value="Intro lecture"`,
		`<option value="false" selected>False</option>`,
		`<input type="text" class="input" value="en">`,
		`<em>Timed Transcript</em>`,
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("render missing %q:\n%s", fragment, html)
		}
	}
}

func TestPanelValuesAfterEditing(t *testing.T) {
	p := newMetadataPanel(t)

	sub, _ := p.Editor("sub")
	sub.Slot().Type(0, "intro.srt")
	sub.Slot().Commit(0)

	langs, _ := p.Editor("transcripts")
	slot := langs.Slot()
	slot.Click(view.ControlAdd, 0)
	slot.Type(0, "en")
	slot.Commit(0)
	slot.Click(view.ControlAdd, 0)
	slot.Type(1, "uk")
	slot.Commit(1)

	testsupport.AssertJSONGolden(t, filepath.Join("testdata", "values.golden.json"), p.Values())

	modified := p.ModifiedValues()
	if diff := cmp.Diff(map[string]any{"sub": "intro.srt", "transcripts": []string{"en", "uk"}}, modified); diff != "" {
		t.Fatalf("modified mismatch (-want +got):\n%s", diff)
	}

	display, _ := p.Editor("display_name")
	display.Slot().Click(view.ControlClear, 0)
	if got := p.ModifiedValues()["display_name"]; got != nil {
		t.Fatalf("cleared field should report nil, got %v", got)
	}
	if _, ok := p.ModifiedValues()["display_name"]; !ok {
		t.Fatalf("cleared field should be reported as modified")
	}
}

func TestPanelMalformedPayloadIsFatal(t *testing.T) {
	if _, err := panel.FromJSON([]byte(`{"sub": `)); err == nil {
		t.Fatalf("expected parse error")
	}
	dup := schema.Payload{
		{Name: "sub", Type: field.TypeString},
		{Name: "sub", Type: field.TypeList},
	}
	if _, err := panel.New(dup); err == nil {
		t.Fatalf("expected duplicate field error")
	}
	if _, err := panel.New(nil, panel.WithName(" ")); err == nil {
		t.Fatalf("expected name error")
	}
}

func TestPanelMissingEntryTemplateLeavesEditorInert(t *testing.T) {
	logger, logs := testsupport.CaptureLogs()
	p := newMetadataPanel(t,
		panel.WithLogger(logger),
		panel.WithPartials(map[string]string{template.NameListEntry: "missing-list"}),
	)

	ed, ok := p.Editor("transcripts")
	if !ok {
		t.Fatalf("degraded editors are still listed")
	}
	if !errors.Is(ed.Err(), editor.ErrTemplateMissing) {
		t.Fatalf("err = %v, want ErrTemplateMissing", ed.Err())
	}
	if _, ok := p.Network().Lookup(synclink.Address{Panel: p.Name(), Field: "transcripts"}); ok {
		t.Fatalf("inert editor must not join the network")
	}
	if !strings.Contains(logs.String(), "couldn't load template") {
		t.Fatalf("missing template not logged: %s", logs.String())
	}
	if _, err := p.Render(); err != nil {
		t.Fatalf("panel should still render: %v", err)
	}
}

func TestPanelMissingContainerTemplateIsLogged(t *testing.T) {
	logger, logs := testsupport.CaptureLogs()
	p := newMetadataPanel(t,
		panel.WithLogger(logger),
		panel.WithPartials(map[string]string{template.NamePanel: "missing-panel"}),
	)
	if len(p.Editors()) != 4 {
		t.Fatalf("editors should still be built")
	}
	if _, err := p.Render(); err == nil {
		t.Fatalf("render should report the missing container template")
	}
	if !strings.Contains(logs.String(), "missing-panel") {
		t.Fatalf("container failure not logged: %s", logs.String())
	}
}

func TestPanelThemeOverridesEntryTemplate(t *testing.T) {
	engine, err := gotemplate.NewDefault(gotemplate.WithFS(fstest.MapFS{
		"studio/string.tpl": {Data: []byte(`<studio-string>{{ value }}</studio-string>`)},
	}))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	selector := &testsupport.StubThemeSelector{Selection: &theme.Selection{
		Theme: "studio",
		Manifest: &theme.Manifest{
			Name:      "studio",
			Templates: map[string]string{template.NameStringEntry: "studio/string"},
		},
	}}

	p := newMetadataPanel(t, panel.WithTemplates(engine), panel.WithTheme(selector, "studio", ""))
	html, err := p.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<studio-string>Intro lecture</studio-string>") {
		t.Fatalf("theme template not used:\n%s", html)
	}
	if selector.Calls != 1 {
		t.Fatalf("selector calls = %d", selector.Calls)
	}

	failing := &testsupport.StubThemeSelector{Err: errors.New("unknown theme")}
	if _, err := panel.FromJSON(testsupport.FixtureBytes(t, testsupport.MetadataFixture),
		panel.WithTheme(failing, "nope", "")); err == nil {
		t.Fatalf("expected theme selection error")
	}
}

func TestPanelsSharingNetworkPropagate(t *testing.T) {
	network := synclink.New()
	t.Cleanup(network.Close)
	engine := testsupport.NewEngine(t)

	metadata := newMetadataPanel(t, panel.WithNetwork(network), panel.WithTemplates(engine))
	transcripts, err := panel.FromJSON(testsupport.FixtureBytes(t, testsupport.TranscriptsFixture),
		panel.WithName("transcripts"), panel.WithNetwork(network), panel.WithTemplates(engine))
	if err != nil {
		t.Fatalf("transcripts panel: %v", err)
	}
	t.Cleanup(transcripts.Close)

	if err := network.Link(synclink.To(
		synclink.Address{Panel: "transcripts", Field: "sub"},
		synclink.Address{Panel: panel.DefaultName, Field: "sub"},
	)); err != nil {
		t.Fatalf("link: %v", err)
	}

	ed, _ := transcripts.Editor("sub")
	ed.Slot().Type(0, "X")
	ed.Slot().Commit(0)

	partner, _ := metadata.Editor("sub")
	if got := partner.ValueFromEditor(); got != "X" {
		t.Fatalf("partner editor = %v, want X", got)
	}
	if got := partner.Field().Value(); got != "X" || !partner.Field().IsExplicitlySet() {
		t.Fatalf("partner model = %v", got)
	}

	transcripts.Close()
	if _, ok := network.Lookup(synclink.Address{Panel: "transcripts", Field: "sub"}); ok {
		t.Fatalf("closed panel still registered")
	}
}

func TestPanelModelAndEditorCounts(t *testing.T) {
	engine := testsupport.NewEngine(t)
	types := []field.Type{field.TypeString, field.TypeList, field.TypeSelect, "Integer", "RelativeTime"}
	registered := editor.NewDefaultRegistry()

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(rt, "n")
		payload := make(schema.Payload, n)
		wantEditors := 0
		for i := range payload {
			typ := rapid.SampledFrom(types).Draw(rt, fmt.Sprintf("type%d", i))
			payload[i] = field.Descriptor{Name: fmt.Sprintf("field_%d", i), Type: typ}
			if _, ok := registered.Lookup(typ); ok {
				wantEditors++
			}
		}

		p, err := panel.New(payload, panel.WithTemplates(engine), panel.WithRegistry(registered))
		if err != nil {
			rt.Fatalf("panel: %v", err)
		}
		defer p.Close()

		if len(p.Models()) != n {
			rt.Fatalf("models = %d, want %d", len(p.Models()), n)
		}
		if len(p.Editors()) != wantEditors || len(p.Editors()) > n {
			rt.Fatalf("editors = %d, want %d", len(p.Editors()), wantEditors)
		}
		if p.Container().Len() != n {
			rt.Fatalf("slots = %d, want %d", p.Container().Len(), n)
		}
		for i, model := range p.Models() {
			if ed, ok := p.Editor(model.Name()); ok && ed.Slot().Index() != i {
				rt.Fatalf("editor %s bound to slot %d, want %d", model.Name(), ed.Slot().Index(), i)
			}
		}
	})
}
