package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/vitrine/pkg/catalog"
	"github.com/aretw0/vitrine/pkg/site"
)

const (
	siteFileName    = "site.yaml"
	catalogFileName = "products.json"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write the bundled site definition and catalog for editing",
	Long: `Writes site.yaml and products.json into dir (default: current directory).
Point --site and --catalog at them to serve the edited copies.
Existing files are kept unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")

		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}

		files := []struct {
			name string
			data []byte
		}{
			{siteFileName, site.DefaultYAML()},
			{catalogFileName, catalog.DefaultJSON()},
		}
		for _, f := range files {
			path := filepath.Join(dir, f.name)
			if _, err := os.Stat(path); err == nil && !force {
				fmt.Fprintf(cmd.OutOrStdout(), "skipped %s (exists)\n", path)
				continue
			}
			if err := os.WriteFile(path, f.data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite existing files")
}
