package main

import (
	"os"
	"os/signal"

	"github.com/sandevgo/lyla/internal/transport/tui"
	"github.com/sandevgo/lyla/pkg/log"
	"github.com/sandevgo/lyla/pkg/srv"
	"github.com/spf13/cobra"
)

var uiCmd = &cobra.Command{
	Use:   "ui [model]",
	Short: "Open the chat window",
	Long:  `Opens a full-screen chat. The optional model argument overrides LYLA_UI_MODEL. Logs go to lyla.log in the runtime directory.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}

		var flushLog func()
		ctx, flushLog = log.NewContextWithFileLogger(ctx, cfg.GetRuntimePath(), isDebug())
		defer flushLog()

		model := cfg.UIModel
		if len(args) == 1 && args[0] != "" {
			model = args[0]
		}

		session, err := newSession(ctx, cfg, cfg.UIProfile, model)
		if err != nil {
			return err
		}

		window := tui.NewProgram(session, cfg.RevealInterval).RenderMarkdown(cfg.UIMarkdown)
		return srv.Run(ctx, sessionEnd(ctx, session, flushLog), window)
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
