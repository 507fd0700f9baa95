package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// rootOptions carries the global flags to every command.
type rootOptions struct {
	configPath string
	jsonOutput bool
	logLevel   string

	// app is set inside the shell so every line shares one cache and store.
	app *app
}

func newRootCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "marquee",
		Short: "Search movies on OMDb and keep favorites",
		Long: `marquee - movie search and favorites for the terminal

Searches the OMDb API, shows movie details and trending titles,
and keeps favorites, ratings and recent searches on disk.

Set OMDB_API_KEY or run 'marquee config init' to get started.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&o.configPath, "config", o.configPath, "Config file (default: discovered)")
	cmd.PersistentFlags().BoolVar(&o.jsonOutput, "json", o.jsonOutput, "Output as JSON")
	cmd.PersistentFlags().StringVar(&o.logLevel, "log-level", o.logLevel, "Log level: debug, info, warn, error")

	cmd.Version = version
	cmd.SetVersionTemplate("marquee {{.Version}}\n")

	cmd.AddCommand(
		newSearchCmd(o),
		newShowCmd(o),
		newTrendingCmd(o),
		newBatchCmd(o),
		newFavCmd(o),
		newRateCmd(o),
		newRecentCmd(o),
		newSuggestCmd(o),
		newCacheCmd(o),
		newConfigCmd(o),
		newShellCmd(o),
	)
	return cmd
}

// withApp runs fn with the shared app, or opens one for this command only.
func (o *rootOptions) withApp(cmd *cobra.Command, fn func(a *app) error) error {
	if o.app != nil {
		return fn(o.app)
	}
	a, err := newApp(cmd.Context(), o, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()
	return fn(a)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := newRootCmd(&rootOptions{})
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

func Execute() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
