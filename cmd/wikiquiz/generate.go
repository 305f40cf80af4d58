package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/at-ishikawa/wikiquiz/internal/api"
	"github.com/at-ishikawa/wikiquiz/internal/app"
	"github.com/at-ishikawa/wikiquiz/internal/quiz"
	"github.com/at-ishikawa/wikiquiz/internal/render"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	format         Format
	play           bool
	shuffleOptions bool
}

func newGenerateCommand() *cobra.Command {
	var options generateOptions
	command := &cobra.Command{
		Use:   "generate <url>",
		Short: "Generate a quiz from a Wikipedia article URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := quiz.ValidateURL(args[0])
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client := newClient(cfg)
			defer func() {
				_ = client.Close()
			}()

			options.shuffleOptions = cfg.Quiz.ShuffleOptions
			return runGenerate(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), client, url, options)
		},
	}
	addFormatFlag(command.Flags(), &options.format)
	command.Flags().BoolVar(&options.play, "play", false, "take the quiz right after it is generated")
	return command
}

func runGenerate(ctx context.Context, stdin io.Reader, stdout io.Writer, client api.Client, url string, options generateOptions) error {
	renderer := render.NewRenderer(stdout, render.DefaultTheme())
	if options.format == FormatText {
		renderer.StatusAlert(render.VariantInfo, "Generating quiz... This may take a moment.")
	}

	shell := app.NewShell(client)
	generated, err := shell.StartGeneration(ctx, url)
	if err != nil {
		var rateLimitErr *api.RateLimitError
		if errors.As(err, &rateLimitErr) {
			message, _ := shell.RateLimit()
			renderer.RateLimitPanel(message)
		}
		return err
	}

	if ok, err := writeStructured(stdout, options.format, generated); ok || err != nil {
		return err
	}
	if options.play {
		return playQuiz(ctx, stdin, stdout, generated, options.shuffleOptions)
	}
	renderer.Quiz(generated)
	_, _ = fmt.Fprintf(stdout, "\nTake it with: wikiquiz play %d\n", generated.ID)
	return nil
}
