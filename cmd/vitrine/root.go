package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/vitrine"
	"github.com/aretw0/vitrine/internal/config"
	"github.com/aretw0/vitrine/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "vitrine",
	Short: "Vitrine serves a machinery manufacturer's marketing site",
	Long: `Vitrine serves the product catalog, service-center locator and FAQs of a
machinery manufacturer, with a slide carousel and a scripted chatbot driven by
server-side engines.

Settings come from VITRINE_* environment variables; flags override them.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// cfg is the environment configuration merged with command-line flags.
var cfg *config.Config

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("site", "", "Site definition YAML (default: bundled site)")
	rootCmd.PersistentFlags().String("catalog", "", "Product catalog JSON (default: bundled catalog)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	overrides := map[string]*string{
		"site":       &c.SiteFile,
		"catalog":    &c.CatalogFile,
		"log-level":  &c.LogLevel,
		"log-format": &c.LogFormat,
	}
	for name, dst := range overrides {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	cfg = c
	return nil
}

func newLogger(w io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewWriter(w, level, logging.Format(cfg.LogFormat)), nil
}

func newApp(logger *slog.Logger, opts ...vitrine.Option) (*vitrine.App, error) {
	base := []vitrine.Option{vitrine.WithLogger(logger)}
	if cfg.SiteFile != "" {
		base = append(base, vitrine.WithSiteFile(cfg.SiteFile))
	}
	if cfg.CatalogFile != "" {
		base = append(base, vitrine.WithCatalogFile(cfg.CatalogFile))
	}
	return vitrine.New(append(base, opts...)...)
}
