package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/vitrine/pkg/dialogue"
)

// Overlay marks session state on the rendered graph.
type Overlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// GenerateMermaid renders a dialogue graph as a Mermaid flowchart.
// Shapes:
// - Root: ((Circle))
// - Node: [Rectangle]
// - Effect: [[Subroutine]] reached by a dotted arrow
// - Missing target: {{Hexagon}} with a fallback arrow back to the root
func GenerateMermaid(g *dialogue.Graph, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	rootID := sanitizeMermaidID(g.RootID())
	missing := map[string]bool{}

	for _, node := range g.Nodes() {
		safeID := sanitizeMermaidID(node.ID)
		opener, closer := "[", "]"
		if node.ID == g.RootID() {
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, node.ID, closer)

		for i, opt := range node.Options {
			label := escapeLabel(opt.Label)
			if opt.Effect != nil {
				effID := fmt.Sprintf("%s_effect_%d", safeID, i)
				fmt.Fprintf(&sb, "    %s[[\"%s<br/>%s\"]]\n", effID, opt.Effect.Kind, escapeLabel(opt.Effect.Href()))
				fmt.Fprintf(&sb, "    %s -. \"%s\" .-> %s\n", safeID, label, effID)
				continue
			}
			safeTo := sanitizeMermaidID(opt.Next)
			if _, ok := g.Node(opt.Next); !ok && !missing[safeTo] {
				missing[safeTo] = true
				fmt.Fprintf(&sb, "    %s{{\"%s (missing)\"}}\n", safeTo, opt.Next)
				fmt.Fprintf(&sb, "    %s -. fallback .-> %s\n", safeTo, rootID)
			}
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", safeID, label, safeTo)
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) so labels stay readable on light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if safeID != "" && !seen[safeID] {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}
		if overlay.CurrentNode != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode))
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_").Replace(id)
}
