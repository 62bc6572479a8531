package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/vitrine/pkg/domain"
)

// Renderer turns conversation pieces into terminal output.
type Renderer struct {
	render func(string) (string, error)
}

// NewRenderer returns a glamour-backed renderer. When the terminal renderer
// cannot be built it falls back to plain text.
func NewRenderer(width int) *Renderer {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return &Renderer{render: func(s string) (string, error) { return s + "\n", nil }}
	}
	return &Renderer{render: r.Render}
}

// NewPlainRenderer renders without styling.
func NewPlainRenderer() *Renderer {
	return &Renderer{render: func(s string) (string, error) { return s + "\n", nil }}
}

// Message renders one transcript entry.
func (r *Renderer) Message(m domain.Message) string {
	who := "**Bot**"
	if !m.FromBot {
		who = "**You**"
	}
	return r.markdown(fmt.Sprintf("%s: %s", who, m.Text))
}

// Options renders the numbered choices of a node.
func (r *Renderer) Options(labels []string) string {
	var sb strings.Builder
	for i, l := range labels {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, l)
	}
	return r.markdown(sb.String())
}

// Effect renders the link a dispatched effect would open.
func (r *Renderer) Effect(e domain.Effect) string {
	return r.markdown(fmt.Sprintf("> Opening %s: <%s>", e.Kind, e.Href()))
}

func (r *Renderer) markdown(s string) string {
	out, err := r.render(s)
	if err != nil {
		return s + "\n"
	}
	return out
}
