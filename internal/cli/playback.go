package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/at-ishikawa/wikiquiz/internal/quiz"
	"github.com/at-ishikawa/wikiquiz/internal/render"
)

// PlaybackCLI shows a whole quiz on one page and lets the user answer it,
// grade it and restart it.
type PlaybackCLI struct {
	*InteractiveQuizCLI
	playback *quiz.Playback
}

func NewPlaybackCLI(base *InteractiveQuizCLI, q quiz.Quiz) *PlaybackCLI {
	return &PlaybackCLI{
		InteractiveQuizCLI: base,
		playback:           quiz.NewPlayback(q),
	}
}

func (c *PlaybackCLI) Playback() *quiz.Playback {
	return c.playback
}

var playbackHelp = map[quiz.Mode]string{
	quiz.ModeView:   "Commands: start, quit",
	quiz.ModeQuiz:   "Commands: <question> <option> (e.g. 1 B), submit, back, quit",
	quiz.ModeResult: "Commands: restart, quit",
}

func (c *PlaybackCLI) Session(ctx context.Context) error {
	_, _ = fmt.Fprintln(c.stdoutWriter)
	c.renderer.Playback(c.playback)
	c.renderer.HelperText(playbackHelp[c.playback.Mode()], nil)

	input, err := c.prompt("> ")
	if err != nil {
		return err
	}
	if isQuit(input) {
		return errEnd
	}

	if err := c.handle(input); err != nil {
		if errors.Is(err, quiz.ErrInvalidTransition) ||
			errors.Is(err, quiz.ErrUnknownQuestion) ||
			errors.Is(err, quiz.ErrUnknownOption) ||
			errors.Is(err, errUnknownCommand) {
			c.renderer.StatusAlert(render.VariantError, err.Error())
			return nil
		}
		return err
	}
	return nil
}

var errUnknownCommand = errors.New("unknown command")

func (c *PlaybackCLI) handle(input string) error {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil
	}

	switch strings.ToLower(fields[0]) {
	case "start", "s":
		return c.playback.Start()
	case "back", "b":
		return c.playback.Inspect()
	case "submit":
		score, err := c.playback.Grade()
		if err != nil {
			return err
		}
		c.renderer.StatusAlert(render.VariantSuccess, fmt.Sprintf("You scored %s.", score))
		return nil
	case "restart", "r":
		return c.playback.Restart()
	}

	if len(fields) != 2 {
		return fmt.Errorf("%q: %w", input, errUnknownCommand)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("%q: %w", input, errUnknownCommand)
	}
	questions := c.playback.Quiz().Questions
	if n < 1 || n > len(questions) {
		return fmt.Errorf("question %d: %w", n, quiz.ErrUnknownQuestion)
	}
	options := questions[n-1].Options
	i, ok := quiz.OptionIndex(fields[1], len(options))
	if !ok {
		return fmt.Errorf("option %q of question %d: %w", fields[1], n, quiz.ErrUnknownOption)
	}
	return c.playback.Answer(n-1, options[i])
}
