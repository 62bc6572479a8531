package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aretw0/vitrine/internal/logging"
	"github.com/aretw0/vitrine/internal/presentation/web"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the product catalog",
	Long: `Prints the normalized catalog in display order. The model column is the
number used by /products?model=N deep links.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		app, err := newApp(logging.NewNop())
		if err != nil {
			return err
		}
		products, err := app.Products(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(products)
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "MODEL\tID\tNAME\tPRICE\tIMAGES")
		for i, p := range products {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", i+1, p.ID, p.Name, web.FormatPrice(p.Price), len(p.Images))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().Bool("json", false, "Print products as JSON")
}
