package main

import (
	"context"
	"fmt"
	"io"

	"github.com/at-ishikawa/wikiquiz/internal/api"
	"github.com/at-ishikawa/wikiquiz/internal/render"
	"github.com/spf13/cobra"
)

func newHistoryCommand() *cobra.Command {
	var format Format
	command := &cobra.Command{
		Use:   "history",
		Short: "List past quiz generations, most recent first",
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

			return runHistory(cmd.Context(), cmd.OutOrStdout(), client, format)
		},
	}
	addFormatFlag(command.Flags(), &format)
	return command
}

func runHistory(ctx context.Context, stdout io.Writer, client api.Client, format Format) error {
	records, err := client.History(ctx)
	if err != nil {
		return fmt.Errorf("client.History > %w", err)
	}
	if ok, err := writeStructured(stdout, format, records); ok || err != nil {
		return err
	}
	render.NewRenderer(stdout, render.DefaultTheme()).HistoryTable(records, nil)
	return nil
}
