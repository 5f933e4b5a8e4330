package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var networksOrg string

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List networks in an organization",
	Example: `  mv-collector networks --org "My Company"`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		org, err := findOrganization(api, networksOrg)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		networks, err := api.GetNetworks(org.ID)
		if err != nil {
			fmt.Printf("Error fetching networks: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(networks)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTIMEZONE")
		fmt.Fprintln(w, "--\t----\t--------")

		for _, network := range networks {
			fmt.Fprintf(w, "%s\t%s\t%s\n", network.ID, network.Name, network.TimeZone)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(networksCmd)

	networksCmd.Flags().StringVar(&networksOrg, "org", "", "Organization ID or name")
	_ = networksCmd.MarkFlagRequired("org")
}
