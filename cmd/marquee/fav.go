package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/movie"
)

func newFavCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fav",
		Aliases: []string{"favorites"},
		Short:   "Manage favorite movies",
	}
	cmd.AddCommand(newFavAddCmd(o), newFavRmCmd(o), newFavLsCmd(o))
	return cmd
}

func newFavAddCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <imdb-id>",
		Short: "Fetch a movie and add it to favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(a *app) error {
				if a.favorites.IsFavorite(args[0]) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is already a favorite\n", args[0])
					return nil
				}
				res := a.catalog.GetMovieDetails(cmd.Context(), args[0])
				if res.Error != "" {
					return errors.New(res.Error)
				}
				if err := a.favorites.Add(cmd.Context(), res.Data); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) to favorites\n", res.Data.Title, res.Data.Year)
				return nil
			})
		},
	}
}

func newFavRmCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <imdb-id>",
		Aliases: []string{"remove"},
		Short:   "Remove a movie from favorites",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd, func(a *app) error {
				if !a.favorites.IsFavorite(args[0]) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is not a favorite\n", args[0])
					return nil
				}
				if err := a.favorites.Remove(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from favorites\n", args[0])
				return nil
			})
		},
	}
}

type favoriteOutput struct {
	*movie.Detail
	UserRating *int `json:"userRating"`
}

func newFavLsCmd(o *rootOptions) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List favorites",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.withApp(cmd, func(a *app) error {
				favs := a.favorites.Filter(filter)
				w := cmd.OutOrStdout()

				if o.jsonOutput {
					out := make([]favoriteOutput, 0, len(favs))
					for _, f := range favs {
						item := favoriteOutput{Detail: f}
						if r, ok := a.favorites.Rating(f.ID); ok {
							item.UserRating = &r
						}
						out = append(out, item)
					}
					return printJSON(w, out)
				}

				if len(favs) == 0 {
					fmt.Fprintln(w, "No favorites yet. Add one with 'marquee fav add <imdb-id>'.")
					return nil
				}
				fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-11s │ %-40s │ %-9s │ %s", "ID", "TITLE", "YEAR", "RATING")))
				fmt.Fprintln(w, "────────────┼──────────────────────────────────────────┼───────────┼───────")
				for _, f := range favs {
					rating := dimStyle.Render("-")
					if r, ok := a.favorites.Rating(f.ID); ok {
						rating = stars(r)
					}
					fmt.Fprintf(w, "%-11s │ %-40s │ %-9s │ %s\n", f.ID, truncate(f.Title, 40), f.Year, rating)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Fuzzy filter by title")
	return cmd
}
