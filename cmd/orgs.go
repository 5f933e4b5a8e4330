package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/client"
	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/collector"
	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/pkg/models"
)

// setupClient builds an authenticated dashboard client or exits with a
// hint when no key is available.
func setupClient() *client.DashboardClient {
	key := resolveAPIKey()
	if key == "" {
		fmt.Println("Error: No API key configured. Use --apikey, MERAKI_DASHBOARD_API_KEY, or 'mv-collector configure'.")
		os.Exit(1)
	}

	return client.New(client.ClientConfig{
		BaseURL: baseURLFromConfig(),
		APIKey:  key,
	})
}

var orgsCmd = &cobra.Command{
	Use:   "orgs",
	Short: "List accessible organizations",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		orgs, err := api.GetOrganizations()
		if err != nil {
			fmt.Printf("Error fetching organizations: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(orgs)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME")
		fmt.Fprintln(w, "--\t----")

		for _, org := range orgs {
			fmt.Fprintf(w, "%s\t%s\n", org.ID, org.Name)
		}
		w.Flush()
	},
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Printf("Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}

// findOrganization resolves an --org value (ID or name) against the
// accessible organizations.
func findOrganization(api collector.API, needle string) (*models.Organization, error) {
	orgs, err := api.GetOrganizations()
	if err != nil {
		return nil, err
	}
	for _, org := range orgs {
		if org.ID == needle || org.Name == needle {
			return &org, nil
		}
	}
	return nil, fmt.Errorf("no organization matches %q", needle)
}

func init() {
	rootCmd.AddCommand(orgsCmd)
}
