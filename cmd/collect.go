package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/client"
	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/collector"
	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/output"
	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/pkg/models"
)

// Variables to hold flag values
var (
	collectTime        string
	collectOutputDir   string
	collectOutputHTML  bool
	collectOrg         string
	collectConcurrency int
)

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Bulk-collect snapshots from every MV camera",
	Long: `Walks every accessible organization, network and MV camera, requests a
snapshot per camera (optionally for a historical timestamp), and saves the
images under the output directory as <org>/<network>/<camera>.jpg.

If no date & time is given, snapshots are collected for the current moment.`,
	Example: `  mv-collector collect -o snapshots
  mv-collector collect -t "2026-08-24 09:00:00" --org "My Company" --outputhtml`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		ts, err := parseSnapshotTime(collectTime)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Running with the following parameters:")
		fmt.Printf("  Output directory: %s\n", collectOutputDir)
		fmt.Printf("  Output HTML report: %v\n", collectOutputHTML)
		if ts == nil {
			fmt.Println("  Date / Time: Now")
		} else {
			fmt.Printf("  Date / Time: %s\n", ts)
		}
		fmt.Println()

		// The output root is the one filesystem failure that aborts the
		// run, so claim it before any API traffic.
		writer, err := output.NewWriter(collectOutputDir)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		coll := collector.New(api, collector.Options{
			Timestamp:   ts,
			OrgFilter:   collectOrg,
			Concurrency: collectConcurrency,
		})

		fmt.Println("Collecting snapshots...")

		report, err := coll.Collect()
		if err != nil {
			var apiErr *client.APIError
			if errors.As(err, &apiErr) && apiErr.Unauthorized() {
				fmt.Println("Error: API key rejected by the Meraki dashboard.")
			} else {
				fmt.Printf("Error: %v\n", err)
			}
			os.Exit(1)
		}

		saved, failed := writer.Save(report)
		for _, f := range failed {
			fmt.Printf("Warning: %v\n", f)
		}

		if collectOutputHTML {
			htmlPath, err := output.RenderHTML(report, saved, collectOutputDir)
			if err != nil {
				fmt.Printf("Warning: HTML report failed: %v\n", err)
			} else {
				fmt.Printf("HTML report saved to %s\n", htmlPath)
			}
		}

		printSummary(report, saved)
	},
}

func printSummary(report *models.CollectionReport, saved []output.SavedFile) {
	success, unavailable, failed := report.Counts()

	fmt.Println()
	fmt.Printf("Done. %d collected, %d unavailable, %d failed (%d file(s) written).\n",
		success, unavailable, failed, len(saved))

	for _, res := range report.AllResults() {
		if res.Status == models.StatusSuccess {
			continue
		}
		fmt.Printf("> %s / %s: %s\n", res.Camera.DisplayName(), res.Camera.Serial, res.Reason)
	}
}

func init() {
	rootCmd.AddCommand(collectCmd)

	collectCmd.Flags().StringVarP(&collectTime, "time", "t", "", "Date & time to collect snapshots for")
	collectCmd.Flags().StringVarP(&collectOutputDir, "outputdir", "o", "snapshots", "Output directory")
	// -h is taken by cobra's help flag, so the long name stands alone
	// with -w as shorthand.
	collectCmd.Flags().BoolVarP(&collectOutputHTML, "outputhtml", "w", false, "Output HTML report")
	collectCmd.Flags().StringVar(&collectOrg, "org", "", "Restrict collection to one organization (ID or name)")
	collectCmd.Flags().IntVar(&collectConcurrency, "concurrency", 0, "Camera worker pool size (default 4)")
}
