// Package commands implements the streamcensor CLI.
package commands

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "streamcensor",
	Short: "Real-time audio profanity censor",
	Long: `streamcensor runs a delayed audio pipeline that transcribes the
live input in the background and writes muted or reversed audio back into
the delay buffer before it reaches the output, so profanity never airs.

Configuration is a single YAML file; see 'streamcensor config validate'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config YAML (required)")
}
