package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/explicitlyaudio/streamcensor/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration file management",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse and validate the config file given by --config",
	RunE: func(cmd *cobra.Command, args []string) error {
		if configPath == "" {
			return fmt.Errorf("--config is required")
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		fmt.Printf("ok: sample_rate=%d channels=%d censor_mode=%s target_delay=%.1fs\n",
			cfg.SampleRate, cfg.Channels, cfg.CensorMode, cfg.TargetDelaySeconds)
		return nil
	},
}

var configDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Print the factory default config as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printDefaultConfig()
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configDefaultCmd)
	rootCmd.AddCommand(configCmd)
}
