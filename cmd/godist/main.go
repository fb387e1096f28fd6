// Command godist rewrites statement plans for distributed execution and maintains the
// partition catalog used to resolve their routing.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"mit.edu/dsg/godist"
	"mit.edu/dsg/godist/config"
)

var (
	configPath string
	catalogDir string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "godist",
		Short:         "Distributed plan separation tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML configuration file")
	root.PersistentFlags().StringVar(&catalogDir, "catalog", "", "directory holding the partition catalog")
	root.AddCommand(newSeparateCmd(), newCatalogCmd())
	return root
}

// open builds the GoDist container from the persistent flags.
func open() (*godist.GoDist, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.LoadFile(configPath); err != nil {
			return nil, err
		}
	}
	return godist.NewGoDist(cfg, catalogDir, nil)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "godist:", err)
		os.Exit(1)
	}
}
