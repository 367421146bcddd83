// Package main is the entry point for the folio book viewer.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/Faultbox/folio/internal/config"
	"github.com/Faultbox/folio/internal/logger"
)

func main() {
	if err := fang.Execute(context.Background(), newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &config.Flags{}
	root := &cobra.Command{
		Use:   "folio",
		Short: "Interactive 3D page-turning book",
		Long: `folio renders a hinged book whose pages bend and curl as they turn.

Pages advance with a click or key press, or follow the scroll position
in scroll mode. Settings come from folio.yaml, the user config directory
and flags, in increasing priority.`,
		SilenceUsage: true,
	}
	flags.Register(root.PersistentFlags())

	root.AddCommand(
		newViewCmd(flags),
		newSimulateCmd(flags),
		newConfigCmd(flags),
	)
	return root
}

// setup loads the configuration and starts logging.
func setup(flags *config.Flags) (*config.Config, error) {
	cfg, err := config.Load(flags)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return cfg, nil
}
