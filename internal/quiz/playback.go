package quiz

import (
	"errors"
	"fmt"
	"maps"
)

// Mode is the state of a Playback.
type Mode string

const (
	// ModeView renders the quiz read-only with the correct answers highlighted.
	ModeView Mode = "view"
	// ModeQuiz collects one answer per question without feedback.
	ModeQuiz Mode = "quiz"
	// ModeResult shows graded answers and the aggregate score.
	ModeResult Mode = "result"
)

var (
	ErrInvalidTransition = errors.New("invalid playback transition")
	ErrUnknownQuestion   = errors.New("unknown question")
	ErrUnknownOption     = errors.New("unknown option")
)

// OptionState is how an option is displayed in the current mode.
type OptionState int

const (
	OptionNeutral OptionState = iota
	OptionSelected
	OptionCorrect
	OptionIncorrect
)

// Playback is the single-page quiz state machine: view -> quiz -> result.
// All transitions are local and never touch the network.
type Playback struct {
	quiz    Quiz
	mode    Mode
	answers map[int]string
	score   *Score
}

// NewPlayback starts a playback of q in view mode.
func NewPlayback(q Quiz) *Playback {
	return &Playback{
		quiz:    q,
		mode:    ModeView,
		answers: make(map[int]string),
	}
}

func (p *Playback) Quiz() Quiz {
	return p.quiz
}

func (p *Playback) Mode() Mode {
	return p.mode
}

// Start moves from view to quiz mode. Answers chosen earlier are kept.
func (p *Playback) Start() error {
	if p.mode != ModeView {
		return fmt.Errorf("start from %s: %w", p.mode, ErrInvalidTransition)
	}
	p.mode = ModeQuiz
	return nil
}

// Inspect moves from quiz back to view mode without grading.
func (p *Playback) Inspect() error {
	if p.mode != ModeQuiz {
		return fmt.Errorf("inspect from %s: %w", p.mode, ErrInvalidTransition)
	}
	p.mode = ModeView
	return nil
}

// Answer records option as the answer to question i, replacing any earlier choice.
func (p *Playback) Answer(i int, option string) error {
	if p.mode != ModeQuiz {
		return fmt.Errorf("answer in %s: %w", p.mode, ErrInvalidTransition)
	}
	if i < 0 || i >= len(p.quiz.Questions) {
		return fmt.Errorf("question %d: %w", i, ErrUnknownQuestion)
	}
	if !p.quiz.Questions[i].HasOption(option) {
		return fmt.Errorf("option %q of question %d: %w", option, i, ErrUnknownOption)
	}
	p.answers[i] = option
	return nil
}

// Answers returns a copy of the stored answers keyed by question index.
func (p *Playback) Answers() map[int]string {
	return maps.Clone(p.answers)
}

// Grade scores the stored answers and moves from quiz to result mode.
func (p *Playback) Grade() (Score, error) {
	if p.mode != ModeQuiz {
		return Score{}, fmt.Errorf("grade from %s: %w", p.mode, ErrInvalidTransition)
	}
	score := Grade(p.quiz, p.answers)
	p.score = &score
	p.mode = ModeResult
	return score, nil
}

// Score returns the score of the last grading, if in result mode.
func (p *Playback) Score() (Score, bool) {
	if p.score == nil {
		return Score{}, false
	}
	return *p.score, true
}

// Restart clears every answer and the score and moves from result to quiz mode.
func (p *Playback) Restart() error {
	if p.mode != ModeResult {
		return fmt.Errorf("restart from %s: %w", p.mode, ErrInvalidTransition)
	}
	p.answers = make(map[int]string)
	p.score = nil
	p.mode = ModeQuiz
	return nil
}

// OptionState returns how option of question i is displayed in the current mode.
func (p *Playback) OptionState(i int, option string) OptionState {
	if i < 0 || i >= len(p.quiz.Questions) {
		return OptionNeutral
	}
	question := p.quiz.Questions[i]
	chosen, answered := p.answers[i]

	switch p.mode {
	case ModeView:
		if question.IsCorrect(option) {
			return OptionCorrect
		}
	case ModeQuiz:
		if answered && chosen == option {
			return OptionSelected
		}
	case ModeResult:
		if question.IsCorrect(option) {
			return OptionCorrect
		}
		if answered && chosen == option {
			return OptionIncorrect
		}
	}
	return OptionNeutral
}

// Grade counts the questions whose answer equals the question's correct answer.
func Grade(q Quiz, answers map[int]string) Score {
	score := Score{Total: len(q.Questions)}
	for i, question := range q.Questions {
		if answer, ok := answers[i]; ok && question.IsCorrect(answer) {
			score.Correct++
		}
	}
	return score
}
