package main

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"
	"github.com/spf13/cobra"
	"github.com/vkrunjs/website/internal/export"
	"github.com/vkrunjs/website/internal/web"
)

func newPreviewCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [page]",
		Short: "Preview a page as markdown in the terminal",
		Long: `Renders a page and prints it as markdown, styled when stdout is a terminal.
The page is "home" (default) or a documentation slug such as "introduction".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(*configPath)
			if err != nil {
				return err
			}

			name := "home"
			if len(args) == 1 {
				name = strings.TrimSpace(args[0])
			}

			page, err := previewPage(web.NewSiteFromConfig(cfg), name)
			if err != nil {
				return err
			}
			return export.Preview(cmd.Context(), cmd.OutOrStdout(), page)
		},
	}

	return cmd
}

func previewPage(site *web.Site, name string) (templ.Component, error) {
	if name == "" || name == "home" {
		return site.Home.View(), nil
	}
	page, err := site.Docs.View(name)
	if err != nil {
		return nil, fmt.Errorf("%w (known pages: home, %s)", err, strings.Join(site.Docs.Slugs(), ", "))
	}
	return page, nil
}
