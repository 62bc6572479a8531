package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/vitrine/internal/logging"
	"github.com/aretw0/vitrine/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the chatbot script as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart of the chatbot script. Effects are drawn as
subroutine nodes and dangling references as missing nodes that fall back to the root.
--visited and --current highlight a conversation path.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(logging.NewNop())
		if err != nil {
			return err
		}

		var overlay *graph.Overlay
		visited, _ := cmd.Flags().GetStringSlice("visited")
		current, _ := cmd.Flags().GetString("current")
		if len(visited) > 0 || current != "" {
			overlay = &graph.Overlay{CurrentNode: current}
			for _, id := range visited {
				overlay.VisitedNodes = append(overlay.VisitedNodes, strings.TrimSpace(id))
			}
		}

		_, err = io.WriteString(cmd.OutOrStdout(), graph.GenerateMermaid(app.Site().Graph(), overlay))
		return err
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringSlice("visited", nil, "Node IDs to mark as visited")
	graphCmd.Flags().String("current", "", "Node ID to mark as current")
}
