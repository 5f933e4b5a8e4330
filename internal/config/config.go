package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// InitConfig reads in the config file and bound ENV variables.
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".mv-collector" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mv-collector")
	}

	// The dashboard key can come from the environment instead of the file.
	_ = viper.BindEnv("api_key", "MERAKI_DASHBOARD_API_KEY")

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		// Config loaded successfully
	}
}

// SaveCredentials updates the config file with the API key and base URL.
func SaveCredentials(apiKey, baseURL string) error {
	viper.Set("api_key", apiKey)
	if baseURL != "" {
		viper.Set("base_url", baseURL)
	}

	// Ensure the file exists before writing
	if err := viper.WriteConfig(); err != nil {
		// If file doesn't exist, create it
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return viper.SafeWriteConfig()
		}
		// If it exists but failed to write, try writing to default path
		home, _ := os.UserHomeDir()
		path := filepath.Join(home, ".mv-collector.yaml")
		return viper.WriteConfigAs(path)
	}
	return nil
}
