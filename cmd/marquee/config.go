package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/config"
)

func newConfigCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigTestCmd(o), newConfigPathCmd(o))
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write an example config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.WriteDefault(path); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func newConfigTestCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "test [path]",
		Short: "Validate configuration file",
		Long:  "Validates config.toml syntax, field values, and environment variable substitution.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := o.configPath
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				found, err := config.Discover()
				if err != nil {
					return err
				}
				path = found
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Validating %s...\n\n", path)

			cfg, err := config.Load(path)
			if err != nil {
				var configErr *config.Error
				if !errors.As(err, &configErr) {
					return fmt.Errorf("failed to load config: %w", err)
				}
				// The file parsed, so show what it resolves to before the problems.
				if resolved, err := config.LoadWithoutValidation(path); err == nil {
					printConfigSummary(w, resolved)
					fmt.Fprintln(w)
				}
				printConfigErrors(w, configErr)
				return fmt.Errorf("configuration invalid")
			}

			printConfigSummary(w, cfg)
			fmt.Fprintln(w, "\nConfiguration valid!")
			return nil
		},
	}
}

func newConfigPathCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if o.configPath != "" {
				fmt.Fprintln(w, o.configPath)
				return nil
			}
			path, err := config.Discover()
			if errors.Is(err, config.ErrNotFound) {
				fmt.Fprintf(w, "No config file found; using defaults. Create one at %s\n", config.DefaultPath())
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(w, path)
			return nil
		},
	}
}

func printConfigErrors(w io.Writer, e *config.Error) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	key := "not set (export OMDB_API_KEY)"
	if cfg.OMDb.APIKey != "" {
		key = "set"
	}
	fmt.Fprintln(w, "Configuration Summary:")
	fmt.Fprintf(w, "  OMDb:       %s (api key %s, timeout %s)\n", cfg.OMDb.BaseURL, key, cfg.OMDb.Timeout)
	if cfg.OMDb.RateLimit > 0 {
		fmt.Fprintf(w, "  Throttle:   %g req/s\n", cfg.OMDb.RateLimit)
	}
	fmt.Fprintf(w, "  Cache:      ttl %s\n", cfg.Cache.TTL)
	fmt.Fprintf(w, "  Retry:      %d attempts, base delay %s\n", cfg.Retry.MaxAttempts, cfg.Retry.BaseDelay)
	fmt.Fprintf(w, "  Storage:    %s %s\n", cfg.Storage.Driver, cfg.Storage.Path)

	mode := "strict"
	if cfg.Trending.BestEffort {
		mode = "best effort"
	}
	fmt.Fprintf(w, "  Trending:   %s (limit %d, %s)\n", strings.Join(cfg.Trending.Seeds, ", "), cfg.Trending.Limit, mode)
	fmt.Fprintf(w, "  Log level:  %s\n", cfg.Log.Level)
}
