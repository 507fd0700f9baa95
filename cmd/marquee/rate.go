package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// parseRating accepts 1-5, or none/clear/0 to remove a rating.
func parseRating(s string) (*int, error) {
	switch strings.ToLower(s) {
	case "none", "clear", "0":
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid rating %q: use 1-5 or none", s)
	}
	return &n, nil
}

func newRateCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <imdb-id> <1-5|none>",
		Short: "Rate a movie, or clear its rating",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseRating(args[1])
			if err != nil {
				return err
			}
			return o.withApp(cmd, func(a *app) error {
				if err := a.favorites.SetRating(cmd.Context(), args[0], value); err != nil {
					return err
				}
				if value == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Cleared rating for %s\n", args[0])
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Rated %s %s\n", args[0], stars(*value))
				return nil
			})
		},
	}
}
