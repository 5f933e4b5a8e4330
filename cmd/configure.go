package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/client"
	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/config"
)

var configureBaseURL string

// configureCmd represents the configure command
var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Validate and save the dashboard API key",
	Long: `Validates the API key against the Dashboard API and saves it locally
so subsequent commands do not need the flag or environment variable.

Example:
  mv-collector configure --apikey "0123abcd..."`,
	Run: func(cmd *cobra.Command, args []string) {
		key := resolveAPIKey()
		if key == "" {
			log.Fatal("Error: No API key provided. Use --apikey or MERAKI_DASHBOARD_API_KEY.")
		}

		api := client.New(client.ClientConfig{
			BaseURL: configureBaseURL,
			APIKey:  key,
		})

		fmt.Println("Validating API key against the Meraki dashboard...")

		orgs, err := api.GetOrganizations()
		if err != nil {
			log.Fatalf("Fatal: API key validation failed: %v", err)
		}

		fmt.Printf("Key valid. %d organization(s) accessible.\n", len(orgs))

		if err := config.SaveCredentials(key, configureBaseURL); err != nil {
			log.Fatalf("Failed to save configuration file: %v", err)
		}

		fmt.Println("Configuration saved. You can now run commands like './mv-collector collect'.")
	},
}

func init() {
	rootCmd.AddCommand(configureCmd)

	configureCmd.Flags().StringVar(&configureBaseURL, "baseurl", "", "Dashboard API base URL (default "+client.DefaultBaseURL+")")
}
