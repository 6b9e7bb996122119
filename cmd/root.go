package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	cartCmd "github.com/Alturino/tgcart/cart/cmd"
	"github.com/Alturino/tgcart/internal/common/constants"
	"github.com/Alturino/tgcart/internal/log"
)

func Start() {
	logger := log.InitLogger("", "").
		With().
		Str(log.KeyAppName, constants.AppTgCart).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{
		Use:   constants.AppTgCart,
		Short: "Telegram Web App shopping cart",
	}
	commands := []*cobra.Command{
		{
			Use:   "serve",
			Short: "Run the cart HTTP server backed by redis",
			Run: func(cmd *cobra.Command, args []string) {
				cartCmd.RunCartServer(cmd.Context())
			},
		},
	}
	rootCmd.AddCommand(commands...)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
