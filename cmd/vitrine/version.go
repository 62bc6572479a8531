package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/vitrine"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of vitrine",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vitrine version %s\n", vitrine.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
