package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	metaeditor "github.com/goliatone/go-metaeditor"
	"github.com/goliatone/go-metaeditor/pkg/session"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a panel interactively and print the explicit values",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		editor, err := buildEditor(cmd.Context(), settings, logger)
		if err != nil {
			return err
		}
		defer editor.Close()

		name := settings.GetString("panel")
		p, ok := editor.Panel(name)
		if !ok {
			return fmt.Errorf("unknown panel %q", name)
		}

		s := session.New(
			session.WithPromptDriver(session.NewSurveyDriver(cmd.ErrOrStderr())),
			session.WithLogger(logger),
		)
		if err := s.Run(cmd.Context(), p); err != nil {
			if errors.Is(err, session.ErrAborted) {
				return errors.New("edit aborted")
			}
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(editor.Values())
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().String("panel", metaeditor.TranscriptsPanel, "Panel to edit")
}
