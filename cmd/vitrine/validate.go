package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/vitrine/internal/logging"
)

var errInvalid = errors.New("validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the site definition and catalog",
	Long: `Loads the site definition, reports chatbot options that point at missing
nodes and nodes unreachable from the root, then reads the catalog.
Dangling references are warnings: at runtime they fall back to the root.
Use --strict to fail on them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")
		out := cmd.OutOrStdout()

		app, err := newApp(logging.NewNop())
		if err != nil {
			return err
		}

		issues := app.Lint()
		for _, issue := range issues {
			fmt.Fprintf(out, "warning: %s\n", issue)
		}

		products, err := app.Products(cmd.Context())
		if err != nil {
			return fmt.Errorf("read catalog: %w", err)
		}

		if strict && len(issues) > 0 {
			return fmt.Errorf("%w: %d chatbot issue(s)", errInvalid, len(issues))
		}
		fmt.Fprintf(out, "Site is valid! ✅ (%d nodes, %d products)\n", len(app.Site().Graph().Nodes()), len(products))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("strict", false, "Treat chatbot warnings as errors")
}
