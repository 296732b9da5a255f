package main

import (
	"fmt"

	"github.com/Sternrassler/pokedex-catalog/internal/config"
	"github.com/Sternrassler/pokedex-catalog/pkg/client"
	"github.com/Sternrassler/pokedex-catalog/pkg/logging"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the creature catalog",
		Long: `catalog - browse creatures by type, 24 per page

  catalog serve    serve the prerendered listing over HTTP
  catalog browse   browse interactively in the terminal
  catalog list     print one listing page`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./catalog.yaml if present)")

	root.AddCommand(newServeCmd(a))
	root.AddCommand(newBrowseCmd(a))
	root.AddCommand(newListCmd(a))
	return root
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	logging.Setup(cfg.Logging())
	return nil
}

func (a *app) upstream() (*client.Client, error) {
	c, err := client.New(a.cfg.Client())
	if err != nil {
		return nil, fmt.Errorf("create upstream client: %w", err)
	}
	return c, nil
}
