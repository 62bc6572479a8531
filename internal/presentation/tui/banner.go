package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the chat header with the company name in a gradient.
func PrintBanner(w io.Writer, company string) {
	p := termenv.ColorProfile()
	colors := []string{"#14b8a6", "#0d9488", "#0f766e"}

	rule := termenv.String("  ──────────────────────────────").Foreground(p.Color(colors[0]))
	title := termenv.String("  " + company).Bold().Foreground(p.Color(colors[1]))
	hint := termenv.String("  Pick an option by number. q quits.").Faint().Foreground(p.Color(colors[2]))

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, hint)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
}
