package main

import (
	"fmt"

	"github.com/Sternrassler/pokedex-catalog/internal/tui"
	"github.com/Sternrassler/pokedex-catalog/pkg/catalog"
	"github.com/Sternrassler/pokedex-catalog/pkg/listing"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBrowseCmd(a *app) *cobra.Command {
	var (
		types []string
		page  int
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog in the terminal",
		Long: `Browse the catalog interactively. Details are loaded five at a time
after each page is shown.

Examples:
  catalog browse
  catalog browse --type fire,flying --page 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			upstream, err := a.upstream()
			if err != nil {
				return err
			}
			defer upstream.Close()

			ctrl := listing.NewController(upstream, a.cfg.BatchFetcher())
			defer ctrl.Stop()

			params := initialParams(types, page)
			model := tui.NewModel(cmd.Context(), ctrl, params)
			if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
				return fmt.Errorf("run browser: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&types, "type", nil, "types to filter by (comma separated)")
	cmd.Flags().IntVar(&page, "page", 1, "page to open")
	return cmd
}

// initialParams normalizes flag input the same way query input is.
func initialParams(types []string, page int) catalog.Params {
	q := catalog.Params{Categories: types, Page: page}.Query()
	return catalog.ParseParams(q)
}
