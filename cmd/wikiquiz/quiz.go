package main

import (
	"context"
	"fmt"
	"io"

	"github.com/at-ishikawa/wikiquiz/internal/api"
	"github.com/at-ishikawa/wikiquiz/internal/cli"
	"github.com/at-ishikawa/wikiquiz/internal/quiz"
	"github.com/at-ishikawa/wikiquiz/internal/render"
	"github.com/spf13/cobra"
)

// quizRunner runs a command against one quiz fetched by id.
type quizRunner func(ctx context.Context, cmd *cobra.Command, q quiz.Quiz, shuffleOptions bool) error

func newQuizCommand(use string, short string, run quizRunner) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseQuizID(args[0])
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

			q, err := fetchQuiz(cmd.Context(), client, id)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd, q, cfg.Quiz.ShuffleOptions)
		},
	}
}

func fetchQuiz(ctx context.Context, client api.Client, id int) (quiz.Quiz, error) {
	q, err := client.Quiz(ctx, id)
	if err != nil {
		return quiz.Quiz{}, fmt.Errorf("client.Quiz(%d) > %w", id, err)
	}
	return q, nil
}

func newShowCommand() *cobra.Command {
	var format Format
	command := newQuizCommand("show", "Show a past quiz with its answers", func(ctx context.Context, cmd *cobra.Command, q quiz.Quiz, _ bool) error {
		if ok, err := writeStructured(cmd.OutOrStdout(), format, q); ok || err != nil {
			return err
		}
		render.NewRenderer(cmd.OutOrStdout(), render.DefaultTheme()).Quiz(q)
		return nil
	})
	addFormatFlag(command.Flags(), &format)
	return command
}

func newPlayCommand() *cobra.Command {
	return newQuizCommand("play", "Take a quiz one question at a time", func(ctx context.Context, cmd *cobra.Command, q quiz.Quiz, shuffleOptions bool) error {
		return playQuiz(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), q, shuffleOptions)
	})
}

func newReviewCommand() *cobra.Command {
	return newQuizCommand("review", "Answer a whole quiz on one page and grade it", func(ctx context.Context, cmd *cobra.Command, q quiz.Quiz, _ bool) error {
		base := cli.NewInteractiveQuizCLI(cmd.InOrStdin(), cmd.OutOrStdout())
		return base.Run(ctx, cli.NewPlaybackCLI(base, q))
	})
}

func newFlashcardsCommand() *cobra.Command {
	return newQuizCommand("flashcards", "Flip the key concept flashcards of a quiz", func(ctx context.Context, cmd *cobra.Command, q quiz.Quiz, _ bool) error {
		base := cli.NewInteractiveQuizCLI(cmd.InOrStdin(), cmd.OutOrStdout())
		return base.Run(ctx, cli.NewFlashcardCLI(base, q.Flashcards))
	})
}

func playQuiz(ctx context.Context, stdin io.Reader, stdout io.Writer, q quiz.Quiz, shuffleOptions bool) error {
	if shuffleOptions {
		q = cli.ShuffleOptions(q)
	}
	base := cli.NewInteractiveQuizCLI(stdin, stdout)
	activeQuizCLI, err := cli.NewActiveQuizCLI(base, q)
	if err != nil {
		return err
	}
	return base.Run(ctx, activeQuizCLI)
}
