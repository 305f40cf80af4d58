// Package render writes the quiz views to a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Theme is the palette shared by every view.
type Theme struct {
	Primary   *color.Color
	Secondary *color.Color
	Success   *color.Color
	Danger    *color.Color
	Muted     *color.Color
	Bold      *color.Color
	Italic    *color.Color
	Dimmed    *color.Color
}

func DefaultTheme() Theme {
	return Theme{
		Primary:   color.New(color.FgBlue, color.Bold),
		Secondary: color.New(color.FgHiBlack, color.Bold),
		Success:   color.New(color.FgGreen),
		Danger:    color.New(color.FgRed),
		Muted:     color.New(color.FgHiBlack),
		Bold:      color.New(color.Bold),
		Italic:    color.New(color.Italic),
		Dimmed:    color.New(color.Faint),
	}
}

// Variant selects the color of a status alert.
type Variant string

const (
	VariantInfo    Variant = "info"
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
)

// Renderer writes views with a theme.
type Renderer struct {
	out   io.Writer
	theme Theme
}

func NewRenderer(out io.Writer, theme Theme) *Renderer {
	return &Renderer{out: out, theme: theme}
}

func (r *Renderer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

func (r *Renderer) println(args ...any) {
	_, _ = fmt.Fprintln(r.out, args...)
}

// Title writes a section heading underlined to its width.
func (r *Renderer) Title(title string) {
	r.println(r.theme.Primary.Sprint(title))
	r.println(r.theme.Muted.Sprint(strings.Repeat("─", len([]rune(title)))))
}

// StatusAlert writes a one-line notice.
func (r *Renderer) StatusAlert(variant Variant, message string) {
	switch variant {
	case VariantSuccess:
		r.println(r.theme.Success.Sprint(message))
	case VariantError:
		r.println(r.theme.Danger.Sprint(message))
	default:
		r.println(r.theme.Primary.Sprint(message))
	}
}

// HelperText writes the hint below an input, or its error when there is one.
func (r *Renderer) HelperText(hint string, err error) {
	if err != nil {
		r.println(r.theme.Danger.Sprint(err.Error()))
		return
	}
	r.println(r.theme.Muted.Sprint(hint))
}

// Badges writes labels inline, each in brackets.
func (r *Renderer) Badges(label string, values []string) {
	if len(values) == 0 {
		return
	}
	badges := make([]string, 0, len(values))
	for _, value := range values {
		badges = append(badges, r.theme.Secondary.Sprintf("[%s]", value))
	}
	r.printf("%s %s\n", r.theme.Bold.Sprint(label+":"), strings.Join(badges, " "))
}
