package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/cache"
)

type cacheStatsOutput struct {
	Size    int               `json:"size"`
	Keys    []string          `json:"keys"`
	TTL     string            `json:"ttl"`
	Entries []cache.EntryInfo `json:"entries"`
}

func newCacheCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the response cache",
		Long: `Inspect the in-memory response cache.

The cache lives for one process, so it only holds entries inside
'marquee shell' or after other commands in the same session.`,
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show cached responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.withApp(cmd, func(a *app) error {
				st := a.catalog.CacheStats()
				entries := a.catalog.CacheEntries()
				w := cmd.OutOrStdout()
				if o.jsonOutput {
					return printJSON(w, cacheStatsOutput{
						Size:    st.Size,
						Keys:    st.Keys,
						TTL:     a.catalog.CacheTTL().String(),
						Entries: entries,
					})
				}

				fmt.Fprintf(w, "Cached responses: %d (ttl %s)\n", st.Size, a.catalog.CacheTTL())
				now := time.Now()
				for _, e := range entries {
					age := humanize.RelTime(e.CreatedAt, now, "ago", "from now")
					if e.Expired {
						age += dimStyle.Render(" (expired)")
					}
					fmt.Fprintf(w, "  %-60s %s\n", truncate(e.Key, 60), age)
				}
				return nil
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop every cached response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.withApp(cmd, func(a *app) error {
				n := a.catalog.CacheStats().Size
				a.catalog.ClearCache()
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s cached %s\n", humanize.Comma(int64(n)), plural(n, "response", "responses"))
				return nil
			})
		},
	}

	cmd.AddCommand(stats, clearCmd)
	return cmd
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
