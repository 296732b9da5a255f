package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Sternrassler/pokedex-catalog/pkg/catalog"
	"github.com/Sternrassler/pokedex-catalog/pkg/listing"
	"github.com/Sternrassler/pokedex-catalog/pkg/pagination"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type listOutput struct {
	Page       int                  `json:"page"`
	TotalPages int                  `json:"totalPages"`
	Total      int                  `json:"total"`
	Items      []catalog.ItemDetail `json:"items"`
}

func newListCmd(a *app) *cobra.Command {
	var (
		types   []string
		page    int
		resolve bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one listing page",
		Long: `Print one page of the catalog listing.

Examples:
  catalog list --page 3
  catalog list --type poison,flying --resolve
  catalog list --type fire --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			upstream, err := a.upstream()
			if err != nil {
				return err
			}
			defer upstream.Close()

			p := listing.NewPrerenderer(upstream, a.cfg.BatchFetcher())
			result, err := p.Listing(cmd.Context(), initialParams(types, page))
			if err != nil {
				return err
			}

			details := result.Details()
			if resolve {
				details = p.ResolveAll(cmd.Context(), result.Items)
			}

			out := listOutput{
				Page:       result.Params.Page,
				TotalPages: result.TotalPages,
				Total:      result.Total,
				Items:      details,
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			return printListing(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringSliceVar(&types, "type", nil, "types to filter by (comma separated)")
	cmd.Flags().IntVar(&page, "page", 1, "page to print")
	cmd.Flags().BoolVar(&resolve, "resolve", false, "resolve images and types of every item")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printListing(w io.Writer, out listOutput) error {
	markers := make([]string, 0, 8)
	for _, m := range pagination.Markers(out.Page, out.TotalPages) {
		markers = append(markers, m.String())
	}
	fmt.Fprintf(w, "Page %d of %d · %s total · [%s]\n\n",
		out.Page, out.TotalPages, humanize.Comma(int64(out.Total)), strings.Join(markers, " "))

	if len(out.Items) == 0 {
		fmt.Fprintln(w, "No creatures match the selected types.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPES\tIMAGE")
	for _, item := range out.Items {
		tags, image := "-", "-"
		if item.Resolved() {
			tags = strings.Join(item.Tags, ", ")
			image = item.ImageURL
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", item.Name, tags, image)
	}
	return tw.Flush()
}
