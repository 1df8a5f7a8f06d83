package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/explicitlyaudio/streamcensor/internal/modelfetch"
)

var modelDir string

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Manage whisper.cpp model files",
}

var modelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known models and whether they are installed",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, e := range modelfetch.Registry {
			status := "not downloaded"
			if modelfetch.IsInstalled(modelDir, e) {
				status = "downloaded"
			}
			fmt.Printf("%-16s %-28s %s\n", e.Name, e.FileName, status)
		}
		return nil
	},
}

var modelDownloadCmd = &cobra.Command{
	Use:   "download <name>",
	Short: "Download a model into the model directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := modelfetch.Lookup(args[0])
		if err != nil {
			return err
		}
		lastLogged := -1
		path, err := modelfetch.Fetch(modelDir, entry, func(pct int) {
			if pct/10 != lastLogged/10 {
				lastLogged = pct
				fmt.Printf("downloading %s: %d%%\n", entry.FileName, pct)
			}
		})
		if err != nil {
			return err
		}
		fmt.Printf("installed %s\n", path)
		return nil
	},
}

func init() {
	home, _ := os.UserHomeDir()
	defaultDir := filepath.Join(home, ".streamcensor", "models")

	modelCmd.PersistentFlags().StringVar(&modelDir, "dir", defaultDir, "model directory")
	modelCmd.AddCommand(modelListCmd)
	modelCmd.AddCommand(modelDownloadCmd)
	rootCmd.AddCommand(modelCmd)
}
