package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sandevgo/lyla/internal/providers/llm"
	"github.com/sandevgo/lyla/internal/service/ui"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models served by the configured runtime",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx, os.Stderr)
		defer flushLog()

		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}

		provider, err := llm.NewProvider(ctx, cfg, "")
		if err != nil {
			return err
		}

		models, err := provider.Models(ctx)
		if err != nil {
			return fmt.Errorf("failed to list models: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, m := range models {
			marker := " "
			if m.ID == cfg.ChatModel || m.ID == cfg.UIModel {
				marker = "*"
			}
			ctxLen := "-"
			if m.ContextLength > 0 {
				ctxLen = fmt.Sprint(m.ContextLength)
			}
			fmt.Fprintf(w, "%s %s\t%s\n", marker, ui.UsageStyle.Render(m.ID), ui.DescStyle.Render(ctxLen))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
