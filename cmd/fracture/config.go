package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fracture/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in default configuration as YAML.

Save it to ~/.fracture/configs/fracture.yaml or ./configs/fracture.yaml and
edit the keys you want to change; missing keys keep their defaults.

Example:
  fracture config > ~/.fracture/configs/fracture.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	},
}
