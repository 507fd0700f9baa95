package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/movie"
)

type showOutput struct {
	Movie    *movie.Detail `json:"movie"`
	Favorite bool          `json:"favorite"`
	Rating   *int          `json:"rating"`
}

func newShowCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <imdb-id>",
		Short: "Show full details for a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(a *app) error {
				res := a.catalog.GetMovieDetails(cmd.Context(), args[0])
				if res.Error != "" {
					return errors.New(res.Error)
				}

				d := res.Data
				rating, rated := a.favorites.Rating(d.ID)
				fav := a.favorites.IsFavorite(d.ID)

				if o.jsonOutput {
					out := showOutput{Movie: d, Favorite: fav}
					if rated {
						out.Rating = &rating
					}
					return printJSON(cmd.OutOrStdout(), out)
				}
				printDetail(cmd.OutOrStdout(), d, fav, rating, rated)
				return nil
			})
		},
	}
}
