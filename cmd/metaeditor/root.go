package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	metaeditor "github.com/goliatone/go-metaeditor"
	"github.com/goliatone/go-metaeditor/pkg/component"
	"github.com/goliatone/go-metaeditor/pkg/panel"
	"github.com/goliatone/go-metaeditor/pkg/render/template/gotemplate"
	"github.com/goliatone/go-metaeditor/pkg/schema"
)

var rootCmd = &cobra.Command{
	Use:   "metaeditor",
	Short: "Render and edit video transcript metadata panels",
	Long: `metaeditor builds the metadata and transcripts editor panels from their
payloads, keeps shared fields in sync and renders or edits them.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default: .metaeditor.yaml or ~/.config/metaeditor/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("metadata", "", "Metadata panel payload (file or URL)")
	rootCmd.PersistentFlags().String("transcripts", "", "Transcripts panel payload (file or URL)")
	rootCmd.PersistentFlags().String("format", "", "Payload format (json, yaml); inferred from the extension when empty")
	rootCmd.PersistentFlags().String("openapi", "", "Build the metadata payload from an OpenAPI document instead")
	rootCmd.PersistentFlags().String("component", "", "OpenAPI component schema used with --openapi")
	rootCmd.PersistentFlags().String("engine", string(gotemplate.BackendPongo2), "Template engine (pongo2, go-template)")
	rootCmd.PersistentFlags().Duration("http-timeout", 30*time.Second, "Timeout for payloads fetched over HTTP")
}

// setup resolves the command settings and builds the logger shared by the
// subcommands.
func setup(cmd *cobra.Command) (*viper.Viper, *slog.Logger, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}
	raw := settings.GetString("log-level")
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", raw, err)
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if used := settings.ConfigFileUsed(); used != "" {
		logger.Debug("config loaded", "path", used)
	}
	return settings, logger, nil
}

// buildEditor loads both payloads named by the settings and wires the
// transcripts editor.
func buildEditor(ctx context.Context, settings *viper.Viper, logger *slog.Logger) (*component.Editor, error) {
	metadataLoc := settings.GetString("metadata")
	transcriptsLoc := settings.GetString("transcripts")
	formatRaw := settings.GetString("format")
	openapiLoc := settings.GetString("openapi")
	componentName := settings.GetString("component")

	loader := metaeditor.NewLoader(schema.WithHTTPFallback(settings.GetDuration("http-timeout")))

	var format schema.Format
	if strings.TrimSpace(formatRaw) != "" {
		parsed, err := schema.ParseFormat(formatRaw)
		if err != nil {
			return nil, err
		}
		format = parsed
	}

	var metadata schema.Payload
	switch {
	case openapiLoc != "":
		doc, err := load(ctx, loader, openapiLoc)
		if err != nil {
			return nil, err
		}
		metadata, err = schema.FromOpenAPI(ctx, doc.Raw(), componentName)
		if err != nil {
			return nil, err
		}
	case metadataLoc != "":
		payload, err := loadPayload(ctx, loader, metadataLoc, format)
		if err != nil {
			return nil, err
		}
		metadata = payload
	default:
		return nil, fmt.Errorf("either --metadata or --openapi is required")
	}

	var transcripts schema.Payload
	if transcriptsLoc != "" {
		payload, err := loadPayload(ctx, loader, transcriptsLoc, format)
		if err != nil {
			return nil, err
		}
		transcripts = payload
	}

	renderer, err := gotemplate.NewBackend(gotemplate.Backend(settings.GetString("engine")))
	if err != nil {
		return nil, err
	}
	return metaeditor.NewTranscriptsEditorFromPayloads(metadata, transcripts,
		component.WithLogger(logger),
		component.WithPanelOptions(panel.WithTemplates(renderer)),
	)
}

func load(ctx context.Context, loader *schema.Loader, location string) (schema.Document, error) {
	src, err := schema.SourceFor(location)
	if err != nil {
		return schema.Document{}, err
	}
	return loader.Load(ctx, src)
}

func loadPayload(ctx context.Context, loader *schema.Loader, location string, format schema.Format) (schema.Payload, error) {
	doc, err := load(ctx, loader, location)
	if err != nil {
		return nil, err
	}
	if format == "" {
		return doc.Payload()
	}
	return schema.Parse(doc.Raw(), format)
}
