package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newShellCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands interactively with a shared cache",
		Long: `Start an interactive session. Every line is a marquee command
without the program name, for example "search avatar" or "show tt0499549".
Responses stay cached for the whole session. Type "exit" to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.app != nil {
				return errors.New("already in a shell")
			}
			a, err := newApp(cmd.Context(), o, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			w := cmd.OutOrStdout()
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(w, titleStyle.Render("marquee> "))
				if !scanner.Scan() {
					fmt.Fprintln(w)
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				switch line {
				case "":
					continue
				case "exit", "quit":
					return nil
				}

				args, err := splitArgs(line)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render("Error: "+err.Error()))
					continue
				}

				sub := newRootCmd(&rootOptions{
					configPath: o.configPath,
					jsonOutput: o.jsonOutput,
					logLevel:   o.logLevel,
					app:        a,
				})
				sub.SetArgs(args)
				sub.SetIn(cmd.InOrStdin())
				sub.SetOut(w)
				sub.SetErr(cmd.ErrOrStderr())
				if err := sub.ExecuteContext(cmd.Context()); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render("Error: "+err.Error()))
				}
			}
		},
	}
}

// splitArgs splits a line on spaces, keeping single- or double-quoted
// runs together.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		quote   rune
		started bool
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			started = true
		case r == ' ' || r == '\t':
			if started {
				args = append(args, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if started {
		args = append(args, cur.String())
	}
	return args, nil
}
