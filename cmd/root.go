package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shahid0mer/Nexora/internal/constants"
	"github.com/shahid0mer/Nexora/internal/log"
	storefront "github.com/shahid0mer/Nexora/storefront/cmd"
)

func Start() {
	logger := log.InitLogger("/var/log/nexora.log").
		With().
		Str(log.KeyAppName, constants.AppMainStorefront).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{Use: "nexora"}
	commands := []*cobra.Command{
		{
			Use:   "storefront",
			Short: "Run storefront service",
			Run: func(cmd *cobra.Command, args []string) {
				storefront.RunStorefront(cmd.Context())
			},
		},
		{
			Use:   "seed",
			Short: "Seed the product catalog from the external feed",
			Run: func(cmd *cobra.Command, args []string) {
				storefront.RunSeeder(cmd.Context())
			},
		},
	}
	rootCmd.AddCommand(commands...)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
