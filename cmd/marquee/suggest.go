package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/suggest"
)

func newSuggestCmd(o *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "suggest [input]...",
		Short: "Suggest searches from history and popular titles",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			return o.withApp(cmd, func(a *app) error {
				list := suggest.Suggest(input, a.recent.List(), limit)
				w := cmd.OutOrStdout()
				if o.jsonOutput {
					return printJSON(w, list)
				}
				if len(list) == 0 {
					fmt.Fprintln(w, "No suggestions")
					return nil
				}

				var origin suggest.Origin
				for _, s := range list {
					if s.Origin != origin {
						origin = s.Origin
						heading := "Popular"
						if origin == suggest.OriginRecent {
							heading = "Recent Searches"
						}
						fmt.Fprintln(w, dimStyle.Render(heading))
					}
					fmt.Fprintf(w, "  %s\n", s.Text)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum suggestions, 0 for all")
	return cmd
}
