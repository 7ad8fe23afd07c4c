// Package metaeditor wires metadata editor panels for video transcripts: a
// full metadata panel and a basic transcripts panel whose shared fields stay
// in sync.
package metaeditor

import (
	"context"
	"fmt"

	"github.com/goliatone/go-metaeditor/pkg/component"
	"github.com/goliatone/go-metaeditor/pkg/panel"
	"github.com/goliatone/go-metaeditor/pkg/schema"
)

// Panel names used by the transcripts editor.
const (
	MetadataPanel    = panel.DefaultName
	TranscriptsPanel = "transcripts"
)

// Payload aliases schema.Payload for callers building payloads by hand.
type Payload = schema.Payload

// NewTranscriptsEditor parses both JSON payloads and builds the transcripts
// editor.
func NewTranscriptsEditor(metadata, transcripts []byte, options ...component.Option) (*component.Editor, error) {
	meta, err := schema.ParseJSON(metadata)
	if err != nil {
		return nil, fmt.Errorf("metaeditor: metadata payload: %w", err)
	}
	basic, err := schema.ParseJSON(transcripts)
	if err != nil {
		return nil, fmt.Errorf("metaeditor: transcripts payload: %w", err)
	}
	return NewTranscriptsEditorFromPayloads(meta, basic, options...)
}

// NewTranscriptsEditorFromPayloads builds the metadata and transcripts panels
// and links every field they share from the transcripts panel into the
// metadata panel. Links mirror, so edits made on the metadata panel show up
// in the transcripts panel without committing there.
func NewTranscriptsEditorFromPayloads(metadata, transcripts Payload, options ...component.Option) (*component.Editor, error) {
	editor := component.New(options...)
	if _, err := editor.AddPanel(MetadataPanel, metadata); err != nil {
		editor.Close()
		return nil, fmt.Errorf("metaeditor: %w", err)
	}
	if _, err := editor.AddPanel(TranscriptsPanel, transcripts); err != nil {
		editor.Close()
		return nil, fmt.Errorf("metaeditor: %w", err)
	}
	if _, err := editor.LinkFields(TranscriptsPanel, MetadataPanel, true); err != nil {
		editor.Close()
		return nil, fmt.Errorf("metaeditor: %w", err)
	}
	return editor, nil
}

// LoadTranscriptsEditor loads both payloads through loader and builds the
// transcripts editor. The payload format follows each source's extension.
func LoadTranscriptsEditor(ctx context.Context, loader *schema.Loader, metadata, transcripts schema.Source, options ...component.Option) (*component.Editor, error) {
	if loader == nil {
		loader = schema.NewLoader()
	}
	meta, err := loader.LoadPayload(ctx, metadata)
	if err != nil {
		return nil, fmt.Errorf("metaeditor: metadata payload: %w", err)
	}
	basic, err := loader.LoadPayload(ctx, transcripts)
	if err != nil {
		return nil, fmt.Errorf("metaeditor: transcripts payload: %w", err)
	}
	return NewTranscriptsEditorFromPayloads(meta, basic, options...)
}
