package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/goliatone/go-metaeditor/pkg/testsupport"
)

// run executes rootCmd with args on fresh flag state, isolated from any
// config in the working directory or home.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeFixture(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, testsupport.FixtureBytes(t, name), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestRenderCommandWritesBothPanels(t *testing.T) {
	dir := t.TempDir()
	metadata := writeFixture(t, dir, testsupport.MetadataFixture)
	transcripts := writeFixture(t, dir, testsupport.TranscriptsFixture)

	html, stderr, err := run(t, "render", "--metadata", metadata, "--transcripts", transcripts, "--log-level", "debug")
	if err != nil {
		t.Fatalf("render: %v\n%s", err, stderr)
	}

	for _, fragment := range []string{`id="metadata_edit"`, `id="transcripts"`, `Other Languages`} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("output missing %q:\n%s", fragment, html)
		}
	}
	if !strings.Contains(stderr, "start_time") {
		t.Fatalf("unregistered field diagnostic not logged:\n%s", stderr)
	}
}

func TestRenderCommandRequiresMetadata(t *testing.T) {
	if _, _, err := run(t, "render", "--metadata", ""); err == nil {
		t.Fatalf("expected missing payload error")
	}
}

func TestRenderCommandRejectsBadLogLevel(t *testing.T) {
	if _, _, err := run(t, "render", "--log-level", "loud"); err == nil {
		t.Fatalf("expected log level error")
	}
}

func TestRenderCommandReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	metadata := writeFixture(t, dir, testsupport.MetadataFixture)
	output := filepath.Join(dir, "panels.html")
	config := filepath.Join(dir, "metaeditor.yaml")
	body := "metadata: " + metadata + "\noutput: " + output + "\nlog-level: info\n"
	if err := os.WriteFile(config, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	stdout, stderr, err := run(t, "render", "--config", config)
	if err != nil {
		t.Fatalf("render: %v\n%s", err, stderr)
	}
	if stdout != "" {
		t.Fatalf("expected panels in %s, got stdout:\n%s", output, stdout)
	}
	written, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(written), `id="metadata_edit"`) {
		t.Fatalf("output missing metadata panel:\n%s", written)
	}
	if !strings.Contains(stderr, "panels written") {
		t.Fatalf("info log missing:\n%s", stderr)
	}
}

func TestRenderCommandFlagOverridesEnv(t *testing.T) {
	dir := t.TempDir()
	metadata := writeFixture(t, dir, testsupport.MetadataFixture)
	t.Setenv("METAEDITOR_METADATA", filepath.Join(dir, "missing.json"))
	t.Setenv("METAEDITOR_LOG_LEVEL", "loud")

	if _, _, err := run(t, "render"); err == nil {
		t.Fatalf("expected env log level to be rejected")
	}
	if _, stderr, err := run(t, "render", "--metadata", metadata, "--log-level", "warn"); err != nil {
		t.Fatalf("flags should win over env: %v\n%s", err, stderr)
	}
}

func TestRenderCommandRejectsMissingConfig(t *testing.T) {
	if _, _, err := run(t, "render", "--config", filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected missing config error")
	}
}

func TestRenderCommandFetchesPayloadOverHTTP(t *testing.T) {
	body := testsupport.FixtureBytes(t, testsupport.MetadataFixture)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	html, stderr, err := run(t, "render", "--metadata", srv.URL+"/metadata.json", "--http-timeout", "5s")
	if err != nil {
		t.Fatalf("render: %v\n%s", err, stderr)
	}
	if !strings.Contains(html, "Intro lecture") {
		t.Fatalf("output missing fetched value:\n%s", html)
	}
}

func TestRenderCommandSelectsTemplateEngine(t *testing.T) {
	dir := t.TempDir()
	metadata := writeFixture(t, dir, testsupport.MetadataFixture)

	html, stderr, err := run(t, "render", "--metadata", metadata, "--engine", "go-template")
	if err != nil {
		t.Fatalf("render: %v\n%s", err, stderr)
	}
	if !strings.Contains(html, `value="Intro lecture"`) {
		t.Fatalf("go-template output missing field value:\n%s", html)
	}

	if _, _, err := run(t, "render", "--metadata", metadata, "--engine", "jinja"); err == nil {
		t.Fatalf("expected unknown engine error")
	}
}
