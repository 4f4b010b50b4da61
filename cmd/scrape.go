package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jepco-digital/support-bot/internal/scraper"
)

var (
	scrapeExport   string
	scrapeFallback bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Refresh the knowledge snapshot from the JEPCO website",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Preview the bundled content without crawling or caching.
		if scrapeFallback {
			snap, err := scraper.FallbackSnapshot()
			if err != nil {
				return err
			}
			zap.L().Info("fallback snapshot",
				zap.Int("sections", snap.Meta.SectionCount),
			)
			if scrapeExport != "" {
				return exportSnapshot(snap, scrapeExport)
			}
			return nil
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		builder := scraper.NewBuilder(cfg.Scrape)
		snap, err := builder.BuildSnapshot(ctx)
		if err != nil {
			return err
		}

		if n, err := st.DeleteExpiredSnapshots(ctx); err != nil {
			zap.L().Warn("expired snapshot cleanup failed", zap.Error(err))
		} else if n > 0 {
			zap.L().Info("expired snapshots removed", zap.Int("count", n))
		}

		if err := st.SetCachedSnapshot(ctx, snap, cacheTTL()); err != nil {
			return err
		}

		zap.L().Info("snapshot cached",
			zap.Int("pages", len(snap.Meta.PagesScraped)),
			zap.Int("sections", snap.Meta.SectionCount),
			zap.Duration("ttl", cacheTTL()),
		)

		if scrapeExport != "" {
			if err := exportSnapshot(snap, scrapeExport); err != nil {
				return err
			}
			zap.L().Info("snapshot exported", zap.String("path", scrapeExport))
		}

		return nil
	},
}

func exportSnapshot(snap any, path string) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return eris.Wrap(err, "cmd: marshal snapshot")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrap(err, "cmd: write snapshot export")
	}
	return nil
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeExport, "export", "", "also write the snapshot as JSON to this path")
	scrapeCmd.Flags().BoolVar(&scrapeFallback, "fallback", false, "preview the bundled fallback content instead of crawling")
	rootCmd.AddCommand(scrapeCmd)
}
