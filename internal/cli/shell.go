package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/at-ishikawa/wikiquiz/internal/api"
	"github.com/at-ishikawa/wikiquiz/internal/app"
	"github.com/at-ishikawa/wikiquiz/internal/quiz"
	"github.com/at-ishikawa/wikiquiz/internal/render"
)

const shellHelp = `Commands:
  generate <url>   generate a quiz from a Wikipedia article (runs in the background)
  history          show past quizzes          refresh    re-fetch the history
  details <id>     open a past quiz           close      close the open quiz
  show             print the current quiz with its answers
  play             take the current quiz one question at a time
  review           answer the current quiz on one page and grade it
  flashcards       flip the key concept cards of the current quiz
  wait             wait for background requests
  tab <name>       switch to the generate or history tab
  help, quit`

type notice struct {
	variant render.Variant
	message string
}

// ShellCLI is the interactive application shell with the Generate and History tabs.
// Generations and detail lookups run in the background so the prompt stays responsive.
type ShellCLI struct {
	*InteractiveQuizCLI
	shell          *app.Shell
	generateTab    *app.GenerateTab
	historyTab     *app.HistoryTab
	shuffleOptions bool
	logger         *slog.Logger

	lifetime context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	mu          sync.Mutex
	notices     []notice
	generateErr string
}

func NewShellCLI(
	ctx context.Context,
	base *InteractiveQuizCLI,
	client api.Client,
	shuffleOptions bool,
	opts ...app.ShellOption,
) *ShellCLI {
	lifetime, cancel := context.WithCancel(ctx)
	shell := app.NewShell(client, opts...)
	return &ShellCLI{
		InteractiveQuizCLI: base,
		shell:              shell,
		generateTab:        app.NewGenerateTab(shell),
		historyTab:         app.NewHistoryTab(shell, client),
		shuffleOptions:     shuffleOptions,
		logger:             slog.Default(),
		lifetime:           lifetime,
		cancel:             cancel,
	}
}

func (c *ShellCLI) Shell() *app.Shell {
	return c.shell
}

// Mount loads the history in the background.
func (c *ShellCLI) Mount() {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.shell.LoadHistory(c.lifetime)
	}()
}

// Wait blocks until every background request has finished.
func (c *ShellCLI) Wait() {
	c.wg.Wait()
}

// Close cancels the background requests and waits for them.
func (c *ShellCLI) Close() {
	c.historyTab.Close()
	c.cancel()
	c.wg.Wait()
}

func (c *ShellCLI) Session(ctx context.Context) error {
	c.flushNotices()

	if message, ok := c.shell.RateLimit(); ok {
		c.renderer.RateLimitPanel(message)
		input, err := c.prompt("Type retry to continue: ")
		if err != nil {
			return err
		}
		if isQuit(input) {
			return errEnd
		}
		if strings.EqualFold(input, "retry") {
			c.shell.DismissRateLimit()
		}
		return nil
	}

	c.renderTab()
	input, err := c.prompt("> ")
	if err != nil {
		return err
	}
	return c.handle(ctx, input)
}

func (c *ShellCLI) renderTab() {
	_, _ = fmt.Fprintln(c.stdoutWriter)
	tabs := []struct {
		tab   app.Tab
		label string
	}{
		{app.TabGenerate, "Generate Quiz"},
		{app.TabHistory, "Past Quizzes"},
	}
	labels := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if c.shell.ActiveTab() == t.tab {
			labels = append(labels, "● "+t.label)
		} else {
			labels = append(labels, "○ "+t.label)
		}
	}
	_, _ = fmt.Fprintln(c.stdoutWriter, strings.Join(labels, "   "))
	_, _ = fmt.Fprintln(c.stdoutWriter)

	switch c.shell.ActiveTab() {
	case app.TabHistory:
		c.renderer.HistoryTable(c.historyTab.Records(), c.historyTab.IsLoading)
		if selected, ok := c.historyTab.Selected(); ok {
			_, _ = fmt.Fprintln(c.stdoutWriter)
			c.renderer.Summary(selected)
			c.renderer.HelperText("Open quiz: show, play, review, flashcards, close", nil)
		}
	default:
		c.renderer.Title("Generate Quiz")
		c.renderer.HelperText("Paste a Wikipedia article URL: generate <url>", c.generateTab.InputError())
		if c.shell.Generating() {
			c.renderer.StatusAlert(render.VariantInfo, "Generating quiz... This may take a moment.")
		}
		if message := c.lastGenerateError(); message != "" {
			c.renderer.StatusAlert(render.VariantError, message)
		}
		if q, ok := c.shell.LastQuiz(); ok {
			_, _ = fmt.Fprintln(c.stdoutWriter)
			c.renderer.Summary(q)
			c.renderer.HelperText("Last quiz: show, play, review, flashcards", nil)
		}
	}
}

func (c *ShellCLI) handle(ctx context.Context, input string) error {
	command, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(command) {
	case "":
		return nil
	case "quit", "exit", "q":
		return errEnd
	case "help", "?":
		_, _ = fmt.Fprintln(c.stdoutWriter, shellHelp)
	case "generate", "g":
		c.openGenerate()
		if arg != "" {
			c.generate(arg)
		}
	case "tab":
		switch app.Tab(strings.ToLower(arg)) {
		case app.TabGenerate:
			c.openGenerate()
		case app.TabHistory:
			c.openHistory(ctx)
		default:
			c.renderer.StatusAlert(render.VariantError, fmt.Sprintf("Unknown tab %q.", arg))
		}
	case "history", "h":
		c.openHistory(ctx)
	case "refresh":
		if err := c.shell.RefreshHistory(ctx); err != nil {
			c.logger.Error("Failed to refresh history", "error", err)
			c.renderer.StatusAlert(render.VariantError, "Failed to refresh history.")
		}
	case "details", "d":
		id, err := strconv.Atoi(arg)
		if err != nil {
			c.renderer.StatusAlert(render.VariantError, fmt.Sprintf("%q is not a quiz id.", arg))
			return nil
		}
		c.shell.SetActiveTab(app.TabHistory)
		c.details(id)
	case "close":
		c.historyTab.CloseModal()
	case "wait":
		c.Wait()
	case "show", "play", "review", "flashcards":
		return c.openQuiz(ctx, strings.ToLower(command))
	default:
		c.renderer.StatusAlert(render.VariantError, fmt.Sprintf("Unknown command %q. Type help for the commands.", command))
	}
	return nil
}

// openGenerate leaves the history tab. Its open quiz and pending lookups are dropped.
func (c *ShellCLI) openGenerate() {
	if c.shell.ActiveTab() == app.TabHistory {
		c.historyTab.CloseModal()
	}
	c.shell.SetActiveTab(app.TabGenerate)
}

func (c *ShellCLI) openHistory(ctx context.Context) {
	c.shell.SetActiveTab(app.TabHistory)
	c.shell.LoadHistory(ctx)
}

func (c *ShellCLI) generate(raw string) {
	url, generation, err := c.generateTab.Prepare(raw)
	if errors.Is(err, app.ErrGenerationInFlight) {
		c.renderer.StatusAlert(render.VariantError, "A quiz generation is already running.")
		return
	}
	if err != nil {
		// shown inline by the generate tab
		return
	}
	c.setGenerateError("")

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		generated, err := generation.Run(c.lifetime, url)
		c.finishGeneration(generated, err)
	}()
	c.renderer.StatusAlert(render.VariantInfo, "Quiz generation is running in the background.")
}

func (c *ShellCLI) finishGeneration(generated quiz.Quiz, err error) {
	var rateLimitErr *api.RateLimitError
	switch {
	case err == nil:
		c.addNotice(render.VariantSuccess, fmt.Sprintf("Quiz generated: %s (#%d)", generated.Title, generated.ID))
	case errors.As(err, &rateLimitErr):
		// the panel is shown on the next prompt
	case errors.Is(err, context.Canceled):
	case errors.Is(err, app.ErrGenerationInFlight):
		c.addNotice(render.VariantError, "A quiz generation is already running.")
	default:
		c.setGenerateError(app.FailureMessage(err, app.ErrGenerationFailed.Error()))
	}
}

func (c *ShellCLI) details(id int) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		_, err := c.historyTab.Details(c.lifetime, id)
		switch {
		case err == nil:
			c.addNotice(render.VariantSuccess, fmt.Sprintf("Quiz #%d is open.", id))
		case errors.Is(err, app.ErrStaleResponse), errors.Is(err, app.ErrTabClosed):
		default:
			c.addNotice(render.VariantError, app.ErrDetailsFailed.Error())
		}
	}()
}

// currentQuiz returns the quiz open in the active tab.
func (c *ShellCLI) currentQuiz() (quiz.Quiz, bool) {
	if c.shell.ActiveTab() == app.TabHistory {
		return c.historyTab.Selected()
	}
	return c.shell.LastQuiz()
}

func (c *ShellCLI) openQuiz(ctx context.Context, command string) error {
	q, ok := c.currentQuiz()
	if !ok {
		c.renderer.StatusAlert(render.VariantError, "No quiz is open.")
		return nil
	}

	switch command {
	case "show":
		_, _ = fmt.Fprintln(c.stdoutWriter)
		c.renderer.Quiz(q)
		return nil
	case "review":
		return c.runNested(ctx, NewPlaybackCLI(c.InteractiveQuizCLI, q))
	case "flashcards":
		return c.runNested(ctx, NewFlashcardCLI(c.InteractiveQuizCLI, q.Flashcards))
	}

	if c.shell.ActiveTab() == app.TabGenerate {
		if _, ok := c.generateTab.Play(); !ok {
			return nil
		}
		defer c.generateTab.ExitPlay()
	}
	if c.shuffleOptions {
		q = ShuffleOptions(q)
	}
	active, err := NewActiveQuizCLI(c.InteractiveQuizCLI, q)
	if err != nil {
		if errors.Is(err, quiz.ErrNoQuestions) {
			c.renderer.StatusAlert(render.VariantError, quiz.ErrNoQuestions.Error())
			return nil
		}
		return err
	}
	return c.runNested(ctx, active)
}

func (c *ShellCLI) addNotice(variant render.Variant, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, notice{variant: variant, message: message})
}

func (c *ShellCLI) flushNotices() {
	c.mu.Lock()
	notices := c.notices
	c.notices = nil
	c.mu.Unlock()

	for _, n := range notices {
		c.renderer.StatusAlert(n.variant, n.message)
	}
}

func (c *ShellCLI) setGenerateError(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generateErr = message
}

func (c *ShellCLI) lastGenerateError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generateErr
}
