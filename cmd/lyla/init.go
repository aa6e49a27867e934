package main

import (
	"os"

	"github.com/sandevgo/lyla/internal/service/installer"
	"github.com/sandevgo/lyla/pkg/log"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:           "init",
	Short:         "Create the runtime directory and its .env",
	SilenceUsage:  true,
	SilenceErrors: false,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx, os.Stderr)
		defer flushLog()

		logger := log.FromCtx(ctx)

		// Current settings seed the wizard defaults.
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}

		state, err := installer.RunWizard(cfg)
		if err != nil {
			return err
		}

		logger.Info().Msgf("initialized runtime directory at: %s", state.Config.GetRuntimePath())
		logger.Info().Msg("Setup complete! You can now run 'lyla chat' or 'lyla ui'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
