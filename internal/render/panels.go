package render

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/at-ishikawa/wikiquiz/internal/quiz"
)

const (
	defaultRateLimitMessage = "You have reached the hourly limit for the Free Tier."
	rateLimitQuota          = "2 Quizzes / Hour"
)

// RateLimitPanel writes the blocking notice shown after a rate-limited generation.
func (r *Renderer) RateLimitPanel(message string) {
	if message == "" {
		message = defaultRateLimitMessage
	}
	r.println()
	r.println(r.theme.Danger.Sprint("🛑 Whoa, Slow Down!"))
	r.println(message)
	r.println()
	r.printf("%s %s\n", r.theme.Bold.Sprint("Quota:"), rateLimitQuota)
	r.println(r.theme.Muted.Sprint("This helps us keep the service free for everyone."))
	r.println()
}

// HistoryTable writes one row per record. Rows whose details are loading are marked.
func (r *Renderer) HistoryTable(records []quiz.Record, isLoading func(id int) bool) {
	r.Title("Quiz Generation History")
	if len(records) == 0 {
		r.println(r.theme.Muted.Sprint("No quizzes generated yet."))
		return
	}

	tw := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tArticle Title\tURL\tDate\t")
	for _, record := range records {
		status := ""
		if isLoading != nil && isLoading(record.ID) {
			status = "loading..."
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			strconv.Itoa(record.ID),
			record.Title,
			record.URL,
			formatDate(record.GeneratedAt),
			status,
		)
	}
	_ = tw.Flush()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// Deck writes every flashcard: the term, or the definition of the flipped card.
// Other cards are dimmed while one is flipped.
func (r *Renderer) Deck(d *quiz.Deck) {
	r.Title("✨ Key Concept Flashcards ✨")
	if d.Len() == 0 {
		r.println(r.theme.Muted.Sprint("No flashcards for this quiz."))
		return
	}
	r.println(r.theme.Muted.Sprint("Pick a card number to flip it. Only one flips at a time."))
	for i, card := range d.Cards() {
		switch {
		case d.Flipped(i):
			r.printf("%s %s\n",
				r.theme.Primary.Sprintf("%2d. %s", i+1, card.Term),
				r.theme.Italic.Sprint("→ "+card.Definition),
			)
		case d.Dimmed(i):
			r.println(r.theme.Dimmed.Sprintf("%2d. %s", i+1, card.Term))
		default:
			r.printf("%2d. %s\n", i+1, card.Term)
		}
	}
}
