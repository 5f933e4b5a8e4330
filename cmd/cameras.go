package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/timeparse"
)

// Variables to hold flag values
var (
	camerasNetwork string
	cameraSerial   string
	outputFile     string
	snapshotTime   string
)

// Parent Command
var camerasCmd = &cobra.Command{
	Use:   "cameras",
	Short: "Manage cameras",
	Long:  `List camera devices in a network or take a single snapshot.`,
}

// List Command
var camerasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List camera devices in a network",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		cameras, err := api.GetCameraDevices(camerasNetwork)
		if err != nil {
			fmt.Printf("Error fetching cameras: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(cameras)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "SERIAL\tNAME\tMODEL\tIP")
		fmt.Fprintln(w, "------\t----\t-----\t--")

		for _, cam := range cameras {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cam.Serial,
				cam.DisplayName(),
				cam.Model,
				cam.LanIP,
			)
		}
		w.Flush()
	},
}

// Snapshot Command
var camerasSnapshotCmd = &cobra.Command{
	Use:     "snapshot",
	Short:   "Take a JPEG snapshot from one camera",
	Example: `  mv-collector cameras snapshot --serial "Q2AB-CDEF-1234" --output "image.jpg"`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		ts, err := parseSnapshotTime(snapshotTime)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Requesting snapshot for camera %s ...\n", cameraSerial)

		link, err := api.GenerateSnapshot(cameraSerial, ts)
		if err != nil {
			fmt.Printf("Error requesting snapshot: %v\n", err)
			os.Exit(1)
		}

		imgData, err := api.FetchImage(link.URL)
		if err != nil {
			fmt.Printf("Error retrieving snapshot: %v\n", err)
			os.Exit(1)
		}

		if err := os.WriteFile(outputFile, imgData, 0644); err != nil {
			fmt.Printf("Error writing file: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Snapshot saved to %s\n", outputFile)
	},
}

// parseSnapshotTime resolves an optional --time value; empty means "now".
func parseSnapshotTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := timeparse.Parse(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func init() {
	// Register Parent
	rootCmd.AddCommand(camerasCmd)

	// Register Subcommands
	camerasCmd.AddCommand(camerasListCmd)
	camerasCmd.AddCommand(camerasSnapshotCmd)

	// Flags for List
	camerasListCmd.Flags().StringVar(&camerasNetwork, "network", "", "Network ID")
	_ = camerasListCmd.MarkFlagRequired("network")

	// Flags for Snapshot
	camerasSnapshotCmd.Flags().StringVar(&cameraSerial, "serial", "", "Serial of the camera")
	camerasSnapshotCmd.Flags().StringVarP(&snapshotTime, "time", "t", "", "Date & time to snapshot (e.g. 2026-08-25 14:00:00)")
	camerasSnapshotCmd.Flags().StringVar(&outputFile, "output", "snapshot.jpg", "Output filename")
	_ = camerasSnapshotCmd.MarkFlagRequired("serial")
}
