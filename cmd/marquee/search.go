package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/movie"
	"github.com/vmunix/marquee/internal/paging"
)

func newSearchCmd(o *rootOptions) *cobra.Command {
	var (
		typ  string
		page int
	)
	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Search movies and series by title",
		Long: `Search OMDb by title. Results come in pages of 10.

Examples:
  marquee search Avatar
  marquee search "the matrix" --type movie
  marquee search batman --page 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !movie.ValidType(typ) {
				return fmt.Errorf("invalid --type %q: must be movie, series or episode", typ)
			}
			query := strings.Join(args, " ")

			return o.withApp(cmd, func(a *app) error {
				ctx := cmd.Context()
				if err := a.recent.Add(ctx, query); err != nil {
					a.log.Warn("could not record recent search", "error", err)
				}

				page = max(page, 1)
				res := a.catalog.SearchMovies(ctx, query, typ, page)
				if res.Error == "" && res.TotalResults > 0 {
					if pages := paging.TotalPages(res.TotalResults, paging.PerPage); !paging.Valid(page, pages) {
						return fmt.Errorf("page %d is out of range: %d results fill %d %s",
							page, res.TotalResults, pages, plural(pages, "page", "pages"))
					}
				}

				w := cmd.OutOrStdout()
				if o.jsonOutput {
					if err := printJSON(w, res); err != nil {
						return err
					}
				}
				if res.Error != "" {
					return errors.New(res.Error)
				}
				if o.jsonOutput {
					return nil
				}

				fmt.Fprintf(w, "Found %d results for %q:\n\n", res.TotalResults, query)
				printSummaries(w, res.Results, (page-1)*paging.PerPage, a.favorites.IsFavorite)
				printPager(w, page, res.TotalResults)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "", "Filter by type: movie, series or episode")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Result page")
	return cmd
}
