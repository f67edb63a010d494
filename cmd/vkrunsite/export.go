package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vkrunjs/website/internal/export"
	"github.com/vkrunjs/website/internal/logger"
	"github.com/vkrunjs/website/internal/web"
)

func newExportCommand(configPath *string) *cobra.Command {
	var output string
	var markdown bool
	var clean bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the site as static files",
		Long:  `Writes every page, the 404 page and the scoped stylesheets to a directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(*configPath)
			if err != nil {
				return err
			}

			if clean {
				if err := os.RemoveAll(output); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("failed to clean output directory: %w", err)
				}
			}

			written, err := export.Site(cmd.Context(), output, web.NewSiteFromConfig(cfg), export.Options{Markdown: markdown})
			if err != nil {
				return err
			}
			for _, rel := range written {
				logger.Debug("Wrote %s", rel)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d files to %s\n", len(written), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "out", "o", "dist", "Output directory")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Also write index.md for every page")
	cmd.Flags().BoolVar(&clean, "clean", false, "Remove the output directory first")

	return cmd
}
