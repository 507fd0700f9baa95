package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newBatchCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <imdb-id>...",
		Short: "Look up several movies at once",
		Long: `Look up several movies concurrently. Failed lookups are listed
after the table; the command fails only when every lookup fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(a *app) error {
				res := a.catalog.GetMoviesByIDs(cmd.Context(), args)
				w := cmd.OutOrStdout()

				if o.jsonOutput {
					if err := printJSON(w, res); err != nil {
						return err
					}
				} else {
					if len(res.Movies) > 0 {
						fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-11s │ %-40s │ %-9s │ %-5s", "ID", "TITLE", "YEAR", "IMDB")))
						fmt.Fprintln(w, "────────────┼──────────────────────────────────────────┼───────────┼──────")
						for _, m := range res.Movies {
							fmt.Fprintf(w, "%-11s │ %-40s │ %-9s │ %-5s\n",
								m.ID, truncate(m.Title, 40), m.Year, imdbRating(m.Rating))
						}
					}
					if len(res.Errors) > 0 {
						fmt.Fprintf(w, "\nWarnings: %s\n", strings.Join(res.Errors, ", "))
					}
				}

				if len(res.Movies) == 0 && len(res.Errors) > 0 {
					return errors.New("all lookups failed")
				}
				return nil
			})
		},
	}
}
