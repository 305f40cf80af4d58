package quiz

// Deck is a set of flashcards of which at most one is flipped.
type Deck struct {
	cards  []Flashcard
	active int
}

func NewDeck(cards []Flashcard) *Deck {
	return &Deck{cards: cards, active: -1}
}

func (d *Deck) Cards() []Flashcard {
	return d.cards
}

func (d *Deck) Len() int {
	return len(d.cards)
}

// Flip turns card i over. Any other flipped card is turned back, and flipping the
// flipped card turns it back.
func (d *Deck) Flip(i int) bool {
	if i < 0 || i >= len(d.cards) {
		return false
	}
	if d.active == i {
		d.active = -1
	} else {
		d.active = i
	}
	return true
}

// Flipped reports whether card i shows its definition.
func (d *Deck) Flipped(i int) bool {
	return d.active >= 0 && d.active == i
}

// Active returns the index of the flipped card.
func (d *Deck) Active() (int, bool) {
	return d.active, d.active >= 0
}

// Dimmed reports whether card i is de-emphasized because another card is flipped.
func (d *Deck) Dimmed(i int) bool {
	return d.active >= 0 && d.active != i
}
