package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/config"
)

var cfgFile string
var jsonOutput bool
var apiKey string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mv-collector",
	Short: "Bulk snapshot collection from Meraki MV cameras",
	Long: `Collect still-image snapshots from Meraki MV cameras across an
organization via the Dashboard API, save them to disk, and optionally
render a browsable HTML report.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() { config.InitConfig(cfgFile) })

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mv-collector.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().StringVarP(&apiKey, "apikey", "k", "", "Meraki dashboard API key (or env MERAKI_DASHBOARD_API_KEY)")
}

// resolveAPIKey prefers the flag, then the config file / environment.
func resolveAPIKey() string {
	if apiKey != "" {
		return apiKey
	}
	return viper.GetString("api_key")
}

// baseURLFromConfig returns an override saved by 'configure', if any.
// Empty means the client uses the public dashboard endpoint.
func baseURLFromConfig() string {
	return viper.GetString("base_url")
}
