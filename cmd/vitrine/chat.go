package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/vitrine/internal/cli"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the chatbot in the terminal",
	Long: `Walks the chatbot script interactively. Options are chosen by number;
effects such as opening a form are printed as links. Type q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")

		logger, err := newLogger(os.Stderr)
		if err != nil {
			return err
		}
		app, err := newApp(logger)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		st := app.Site()
		return cli.RunChat(ctx, cli.ChatOptions{
			Graph:   st.Graph(),
			Delays:  st.Delays(),
			Company: st.Company().Name,
			In:      cmd.InOrStdin(),
			Out:     cmd.OutOrStdout(),
			Plain:   plain,
			Logger:  logger,
		})
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().Bool("plain", false, "Disable styled output")
}
