package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/folio/internal/config"
)

func newConfigCmd(flags *config.Flags) *cobra.Command {
	var write string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print or write the effective configuration",
		Long: `Print the configuration after defaults, file and flags are merged.
With --write the result is saved to a file instead, which is a convenient
way to start a folio.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags)
			if err != nil {
				return err
			}
			if write != "" {
				if err := cfg.SaveTo(write); err != nil {
					return fmt.Errorf("write %s: %w", write, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", write)
				return nil
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&write, "write", "w", "", "Save to this path")
	return cmd
}
