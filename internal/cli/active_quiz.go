package cli

import (
	"context"
	"fmt"
	"math/rand"
	"slices"

	"github.com/at-ishikawa/wikiquiz/internal/quiz"
	"github.com/at-ishikawa/wikiquiz/internal/render"
)

// ActiveQuizCLI plays a quiz one question at a time with feedback after every answer.
type ActiveQuizCLI struct {
	*InteractiveQuizCLI
	active *quiz.ActiveQuiz
}

func NewActiveQuizCLI(base *InteractiveQuizCLI, q quiz.Quiz) (*ActiveQuizCLI, error) {
	active, err := quiz.NewActiveQuiz(q)
	if err != nil {
		return nil, fmt.Errorf("quiz.NewActiveQuiz() > %w", err)
	}
	return &ActiveQuizCLI{
		InteractiveQuizCLI: base,
		active:             active,
	}, nil
}

// ShuffleOptions returns a copy of q with the options of every question shuffled.
func ShuffleOptions(q quiz.Quiz) quiz.Quiz {
	questions := slices.Clone(q.Questions)
	for i := range questions {
		options := slices.Clone(questions[i].Options)
		rand.Shuffle(len(options), func(a, b int) {
			options[a], options[b] = options[b], options[a]
		})
		questions[i].Options = options
	}
	q.Questions = questions
	return q
}

func (c *ActiveQuizCLI) Session(ctx context.Context) error {
	if c.active.Finished() {
		c.renderer.ScoreBoard(c.active.Score())
		return errEnd
	}

	if c.active.Answered() {
		label := "Next Question"
		if c.active.IsLast() {
			label = "Finish Quiz"
		}
		input, err := c.prompt(fmt.Sprintf("[Enter] %s: ", label))
		if err != nil {
			return err
		}
		if isQuit(input) {
			return errEnd
		}
		if err := c.active.Next(); err != nil {
			return fmt.Errorf("active.Next() > %w", err)
		}
		return nil
	}

	_, _ = fmt.Fprintln(c.stdoutWriter)
	c.renderer.ActiveQuestion(c.active)
	question := c.active.Current()
	input, err := c.prompt(fmt.Sprintf("Answer [A-%s]: ", quiz.OptionLetter(len(question.Options)-1)))
	if err != nil {
		return err
	}
	if isQuit(input) {
		return errEnd
	}

	i, ok := quiz.OptionIndex(input, len(question.Options))
	if !ok {
		c.renderer.StatusAlert(render.VariantError, fmt.Sprintf("%q is not one of the options.", input))
		return nil
	}
	if _, err := c.active.Select(question.Options[i]); err != nil {
		return fmt.Errorf("active.Select() > %w", err)
	}
	c.renderer.ActiveFeedback(c.active)
	return nil
}
