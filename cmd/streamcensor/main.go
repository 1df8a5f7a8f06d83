// Command streamcensor runs the real-time audio profanity censor.
//
// Usage:
//
//	streamcensor run --config path.yaml
//	streamcensor config validate --config path.yaml
//	streamcensor config default
//	streamcensor version
package main

import (
	"fmt"
	"os"

	"github.com/explicitlyaudio/streamcensor/cmd/streamcensor/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
