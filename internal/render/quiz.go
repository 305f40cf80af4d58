package render

import (
	"strings"

	"github.com/at-ishikawa/wikiquiz/internal/quiz"
)

// Summary writes the title, summary, topics, sections and key entities of q.
func (r *Renderer) Summary(q quiz.Quiz) {
	r.Title(q.Title)
	if q.URL != "" {
		r.println(r.theme.Muted.Sprint(q.URL))
	}
	if q.Summary != "" {
		r.println(q.Summary)
	}
	r.println()

	r.Badges("Topics", q.RelatedTopics)
	r.Badges("Sections", q.Sections)
	for _, entityType := range q.EntityTypes() {
		names := q.KeyEntities[entityType]
		if len(names) == 0 {
			continue
		}
		r.printf("%s %s\n", r.theme.Bold.Sprint(entityType+":"), strings.Join(names, ", "))
	}
	r.println()
}

// Quiz writes q read-only with every correct answer and its explanation.
func (r *Renderer) Quiz(q quiz.Quiz) {
	r.Playback(quiz.NewPlayback(q))
}

// Playback writes the quiz of p in its current mode.
func (r *Renderer) Playback(p *quiz.Playback) {
	q := p.Quiz()
	mode := p.Mode()
	answers := p.Answers()

	r.Summary(q)
	r.Title("Generated Quiz")
	if len(q.Questions) == 0 {
		r.println(r.theme.Muted.Sprint("No questions."))
		return
	}

	for i, question := range q.Questions {
		r.printf("%s %s\n",
			r.theme.Bold.Sprintf("Q%d. %s", i+1, question.Question),
			r.theme.Secondary.Sprintf("[%s]", question.Difficulty),
		)
		for j, option := range question.Options {
			r.option(j, option, p.OptionState(i, option))
		}

		switch mode {
		case quiz.ModeView:
			r.printf("   %s %s\n", r.theme.Success.Sprint("Correct Answer:"), question.Answer)
			if question.Explanation != "" {
				r.printf("   %s\n", r.theme.Muted.Sprint(question.Explanation))
			}
		case quiz.ModeQuiz:
			if _, ok := answers[i]; !ok {
				r.printf("   %s\n", r.theme.Muted.Sprint("(not answered)"))
			}
		case quiz.ModeResult:
			if question.Explanation != "" {
				r.printf("   %s\n", r.theme.Muted.Sprint(question.Explanation))
			}
		}
		r.println()
	}

	if score, ok := p.Score(); ok {
		r.printf("%s %s\n", r.theme.Primary.Sprint("Score:"), r.theme.Bold.Sprint(score.String()))
	}
}

// option writes one lettered option with the marker of its display state.
func (r *Renderer) option(i int, option string, state quiz.OptionState) {
	label := quiz.OptionLetter(i) + ". " + option
	switch state {
	case quiz.OptionCorrect:
		r.printf(" %s %s\n", r.theme.Success.Sprint("✔"), r.theme.Success.Sprint(label))
	case quiz.OptionIncorrect:
		r.printf(" %s %s\n", r.theme.Danger.Sprint("✘"), r.theme.Danger.Sprint(label))
	case quiz.OptionSelected:
		r.printf(" %s %s\n", r.theme.Primary.Sprint("●"), r.theme.Primary.Sprint(label))
	default:
		r.printf("   %s\n", label)
	}
}

// ActiveQuestion writes the current question of a with its progress and score.
func (r *Renderer) ActiveQuestion(a *quiz.ActiveQuiz) {
	question := a.Current()
	r.printf("%s    %s\n",
		r.theme.Muted.Sprintf("Question %d of %d", a.Index()+1, a.Total()),
		r.theme.Primary.Sprintf("Score: %d", a.Score().Correct),
	)
	r.println(r.theme.Primary.Sprint(question.Question))
	for i, option := range question.Options {
		r.option(i, option, a.OptionState(option))
	}
}

// ActiveFeedback writes whether the answer to the current question was correct, and its explanation.
func (r *Renderer) ActiveFeedback(a *quiz.ActiveQuiz) {
	selected, ok := a.Selected()
	if !ok {
		return
	}
	r.println()
	if a.Current().IsCorrect(selected) {
		r.println(r.theme.Bold.Sprint("✅ Correct!"))
	} else {
		r.println(r.theme.Bold.Sprint("❌ Incorrect"))
	}
	if explanation := a.Current().Explanation; explanation != "" {
		r.println(r.theme.Muted.Sprint(explanation))
	}
}

// ScoreBoard writes the final score of an active quiz.
func (r *Renderer) ScoreBoard(score quiz.Score) {
	r.println()
	r.println(r.theme.Muted.Sprint("Quiz Completed!"))
	r.println(r.theme.Primary.Sprint(score.String()))
	r.printf("%d%% Accuracy\n", score.Percent())
}
