package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/at-ishikawa/wikiquiz/internal/quiz"
	"github.com/at-ishikawa/wikiquiz/internal/render"
)

// FlashcardCLI flips the key concept cards of a quiz.
type FlashcardCLI struct {
	*InteractiveQuizCLI
	deck *quiz.Deck
}

func NewFlashcardCLI(base *InteractiveQuizCLI, cards []quiz.Flashcard) *FlashcardCLI {
	return &FlashcardCLI{
		InteractiveQuizCLI: base,
		deck:               quiz.NewDeck(cards),
	}
}

func (c *FlashcardCLI) Deck() *quiz.Deck {
	return c.deck
}

func (c *FlashcardCLI) Session(ctx context.Context) error {
	_, _ = fmt.Fprintln(c.stdoutWriter)
	c.renderer.Deck(c.deck)
	if c.deck.Len() == 0 {
		return errEnd
	}

	input, err := c.prompt(fmt.Sprintf("Card [1-%d] or q: ", c.deck.Len()))
	if err != nil {
		return err
	}
	if isQuit(input) {
		return errEnd
	}

	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > c.deck.Len() {
		c.renderer.StatusAlert(render.VariantError, fmt.Sprintf("%q is not a card number.", input))
		return nil
	}
	c.deck.Flip(n - 1)
	return nil
}
