package quiz

import (
	"errors"
	"fmt"
)

var (
	ErrNoQuestions     = errors.New("Error loading quiz data.")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrNotAnswered     = errors.New("question not answered yet")
	ErrFinished        = errors.New("quiz already finished")
)

// ActiveQuiz presents one question at a time and gives feedback right after each answer.
type ActiveQuiz struct {
	quiz     Quiz
	index    int
	correct  int
	selected string
	answered bool
	finished bool
}

func NewActiveQuiz(q Quiz) (*ActiveQuiz, error) {
	if len(q.Questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &ActiveQuiz{quiz: q}, nil
}

func (a *ActiveQuiz) Index() int {
	return a.index
}

func (a *ActiveQuiz) Total() int {
	return len(a.quiz.Questions)
}

// Current returns the question being asked.
func (a *ActiveQuiz) Current() Question {
	return a.quiz.Questions[a.index]
}

// IsLast reports whether the current question is the last one.
func (a *ActiveQuiz) IsLast() bool {
	return a.index == len(a.quiz.Questions)-1
}

func (a *ActiveQuiz) Answered() bool {
	return a.answered
}

// Selected returns the option chosen for the current question.
func (a *ActiveQuiz) Selected() (string, bool) {
	return a.selected, a.answered
}

func (a *ActiveQuiz) Finished() bool {
	return a.finished
}

// Select answers the current question and locks it.
func (a *ActiveQuiz) Select(option string) (bool, error) {
	if a.finished {
		return false, ErrFinished
	}
	if a.answered {
		return false, ErrAlreadyAnswered
	}
	question := a.Current()
	if !question.HasOption(option) {
		return false, fmt.Errorf("option %q: %w", option, ErrUnknownOption)
	}

	a.selected = option
	a.answered = true
	isCorrect := question.IsCorrect(option)
	if isCorrect {
		a.correct++
	}
	return isCorrect, nil
}

// Next advances to the next question, or finishes the quiz after the last one.
func (a *ActiveQuiz) Next() error {
	if a.finished {
		return ErrFinished
	}
	if !a.answered {
		return ErrNotAnswered
	}
	if a.IsLast() {
		a.finished = true
		return nil
	}
	a.index++
	a.selected = ""
	a.answered = false
	return nil
}

// OptionState returns the feedback color of option for the current question.
func (a *ActiveQuiz) OptionState(option string) OptionState {
	if !a.answered {
		return OptionNeutral
	}
	if a.Current().IsCorrect(option) {
		return OptionCorrect
	}
	if option == a.selected {
		return OptionIncorrect
	}
	return OptionNeutral
}

// Score returns the running score.
func (a *ActiveQuiz) Score() Score {
	return Score{Correct: a.correct, Total: len(a.quiz.Questions)}
}
