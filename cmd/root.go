package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jepco-digital/support-bot/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "jepco-bot",
	Short: "JEPCO customer support chatbot",
	Long:  "Scrapes the JEPCO website into a bilingual knowledge snapshot and answers customer questions in English, Formal Arabic, or Jordanian Arabic through a hosted chat model.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
