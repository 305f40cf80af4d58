package main

import (
	"context"
	"fmt"
	"io"

	"github.com/at-ishikawa/wikiquiz/internal/api"
	"github.com/at-ishikawa/wikiquiz/internal/cli"
	"github.com/spf13/cobra"
)

func newShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive quiz shell with the Generate and History tabs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client := newClient(cfg)
			defer func() {
				_ = client.Close()
			}()

			return runShell(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), client, cfg.Quiz.ShuffleOptions)
		},
	}
}

func runShell(ctx context.Context, stdin io.Reader, stdout io.Writer, client api.Client, shuffleOptions bool) error {
	base := cli.NewInteractiveQuizCLI(stdin, stdout)
	shell := cli.NewShellCLI(ctx, base, client, shuffleOptions)
	defer shell.Close()

	shell.Mount()
	_, _ = fmt.Fprintln(stdout, "Wiki Quiz Generator. Type help for the commands.")
	return base.Run(ctx, shell)
}
