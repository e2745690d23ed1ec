package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and generation mode",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\ngeneration mode: %s\n", app, version, generationMode(viper.GetString("generation.provider")))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func generationMode(provider string) string {
	switch provider {
	case "", "mock":
		return "demo (mock generator)"
	default:
		return provider
	}
}
