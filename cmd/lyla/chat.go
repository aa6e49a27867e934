package main

import (
	"os"
	"os/signal"

	"github.com/sandevgo/lyla/internal/transport/cli"
	"github.com/sandevgo/lyla/pkg/srv"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat in the terminal",
	Long:  `Reads questions line by line and prints each reply. Type 'exit' or press Ctrl+D to quit.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx, os.Stderr)
		defer flushLog()

		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}

		session, err := newSession(ctx, cfg, cfg.ChatProfile, cfg.ChatModel)
		if err != nil {
			return err
		}

		rl, err := cli.NewReadLine(session)
		if err != nil {
			return err
		}

		return srv.Run(ctx, sessionEnd(ctx, session, flushLog), rl)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
