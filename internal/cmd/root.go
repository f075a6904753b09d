package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/config"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "tictactoe",
		Short: "Tic-tac-toe with time travel through the move history",
		Long: heredoc.Doc(`
			Two players take turns on a 3x3 board. Every position of the game is kept,
			so you can jump back to any earlier move and play on from there.

			Use "serve" to host games over HTTP and websocket, or "play" to
			play in the terminal.
		`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().String("config", config.DefaultPath(), "Path to the config file")

	root.AddCommand(Serve())
	root.AddCommand(Play())

	return root
}
