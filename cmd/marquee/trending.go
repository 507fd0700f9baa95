package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newTrendingCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "trending",
		Short: "Show popular movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.withApp(cmd, func(a *app) error {
				res := a.catalog.GetTrendingMovies(cmd.Context())
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

				fmt.Fprintln(w, titleStyle.Render("Trending"))
				fmt.Fprintln(w)
				printSummaries(w, res.Results, 0, a.favorites.IsFavorite)
				return nil
			})
		},
	}
}
