package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the editor panels as HTML",
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

		var out strings.Builder
		for _, p := range editor.Panels() {
			html, err := p.Render()
			if err != nil {
				return err
			}
			for _, diag := range p.Diagnostics() {
				logger.Log(cmd.Context(), diag.Level, "field diagnostic", "panel", p.Name(), "detail", diag.String())
			}
			out.WriteString(html)
			out.WriteString("\n")
		}

		output := settings.GetString("output")
		if output == "" {
			_, err := fmt.Fprint(cmd.OutOrStdout(), out.String())
			return err
		}
		if err := os.WriteFile(output, []byte(out.String()), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Info("panels written", "path", output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("output", "o", "", "Output file (stdout if empty)")
}
