package commands

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/explicitlyaudio/streamcensor/internal/config"
)

func printDefaultConfig() error {
	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
