package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jepco-digital/support-bot/internal/model"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Inspect the cached knowledge snapshot",
}

var snapshotStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which snapshot the bot would answer from",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		snap, err := loadSnapshot(ctx, st)
		if err != nil {
			return err
		}

		fmt.Printf("source:   %s\n", snap.Meta.Source)
		if !snap.Meta.ScrapedAt.IsZero() {
			fmt.Printf("scraped:  %s\n", snap.Meta.ScrapedAt.Format("2006-01-02 15:04:05 MST"))
		}
		fmt.Printf("pages:    %d\n", len(snap.Meta.PagesScraped))
		fmt.Printf("sections: %d\n", snap.Meta.SectionCount)

		for _, bucket := range []string{"english", "arabic"} {
			content := snap.Bucket(bucket)
			fmt.Printf("\n%s:\n", bucket)
			for _, cat := range model.Categories() {
				if n := len(content[cat]); n > 0 {
					fmt.Printf("  %-20s %d\n", cat, n)
				}
			}
		}

		return nil
	},
}

var snapshotExportPath string

var snapshotExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the current snapshot as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		snap, err := loadSnapshot(ctx, st)
		if err != nil {
			return err
		}

		if err := exportSnapshot(snap, snapshotExportPath); err != nil {
			return err
		}
		fmt.Println("written:", snapshotExportPath)
		return nil
	},
}

func init() {
	snapshotExportCmd.Flags().StringVar(&snapshotExportPath, "out", "snapshot.json", "output path")
	snapshotCmd.AddCommand(snapshotStatusCmd, snapshotExportCmd)
	rootCmd.AddCommand(snapshotCmd)
}
