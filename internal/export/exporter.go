// Package export writes quizzes as markdown study sheets and, optionally, PDFs.
package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/at-ishikawa/wikiquiz/internal/api"
	"github.com/at-ishikawa/wikiquiz/internal/assets"
	"github.com/at-ishikawa/wikiquiz/internal/pdf"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// Result is the files written for one quiz.
type Result struct {
	ID           int
	Title        string
	MarkdownPath string
	PDFPath      string
}

type Exporter struct {
	client       api.Client
	outputDir    string
	templatePath string
	withPDF      bool
	concurrency  int
	clock        func() time.Time
}

type Option func(*Exporter)

// WithPDF also converts every sheet to PDF.
func WithPDF(enabled bool) Option {
	return func(e *Exporter) {
		e.withPDF = enabled
	}
}

// WithTemplate overrides the embedded sheet template.
func WithTemplate(templatePath string) Option {
	return func(e *Exporter) {
		e.templatePath = templatePath
	}
}

func WithConcurrency(n int) Option {
	return func(e *Exporter) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(e *Exporter) {
		e.clock = clock
	}
}

func NewExporter(client api.Client, outputDir string, opts ...Option) *Exporter {
	e := &Exporter{
		client:      client,
		outputDir:   outputDir,
		concurrency: defaultConcurrency,
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export fetches the quizzes of ids concurrently and writes a sheet for each.
// Results are in the order of ids. The first failure cancels the remaining fetches.
func (e *Exporter) Export(ctx context.Context, ids []int) ([]Result, error) {
	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", e.outputDir, err)
	}

	results := make([]Result, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			result, err := e.exportOne(gctx, id)
			if err != nil {
				return fmt.Errorf("export quiz %d > %w", id, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Exporter) exportOne(ctx context.Context, id int) (Result, error) {
	q, err := e.client.Quiz(ctx, id)
	if err != nil {
		return Result{}, fmt.Errorf("client.Quiz > %w", err)
	}

	var buf bytes.Buffer
	if err := assets.WriteQuizSheet(&buf, e.templatePath, assets.NewQuizSheet(q, e.clock())); err != nil {
		return Result{}, fmt.Errorf("assets.WriteQuizSheet() > %w", err)
	}

	baseName := fmt.Sprintf("%d-%s", q.ID, slugify(q.Title))
	result := Result{
		ID:           q.ID,
		Title:        q.Title,
		MarkdownPath: filepath.Join(e.outputDir, baseName+".md"),
	}
	if err := os.WriteFile(result.MarkdownPath, buf.Bytes(), 0644); err != nil {
		return Result{}, fmt.Errorf("os.WriteFile(%s) > %w", result.MarkdownPath, err)
	}
	slog.Default().Debug("exported quiz", "id", q.ID, "path", result.MarkdownPath)

	if e.withPDF {
		pdfPath, err := pdf.ConvertMarkdownToPDF(result.MarkdownPath)
		if err != nil {
			return Result{}, fmt.Errorf("pdf.ConvertMarkdownToPDF() > %w", err)
		}
		result.PDFPath = pdfPath
	}
	return result, nil
}

// slugify turns a title into a lower-case file name part.
func slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "quiz"
	}
	return slug
}
