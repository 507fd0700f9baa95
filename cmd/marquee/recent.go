package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRecentCmd(o *rootOptions) *cobra.Command {
	var clearAll bool
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show recent searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.withApp(cmd, func(a *app) error {
				w := cmd.OutOrStdout()
				if clearAll {
					if err := a.recent.Clear(cmd.Context()); err != nil {
						return err
					}
					fmt.Fprintln(w, "Recent searches cleared")
					return nil
				}

				queries := a.recent.List()
				if o.jsonOutput {
					return printJSON(w, queries)
				}
				if len(queries) == 0 {
					fmt.Fprintln(w, "No recent searches")
					return nil
				}
				for i, q := range queries {
					fmt.Fprintf(w, "%d. %s\n", i+1, q)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Forget all recent searches")
	return cmd
}
