package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/folio/internal/config"
	"github.com/Faultbox/folio/internal/logger"
	"github.com/Faultbox/folio/internal/simulate"
)

func newSimulateCmd(flags *config.Flags) *cobra.Command {
	var (
		script string
		fps    int
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a scripted session without a window",
		Long: `Run a scripted session without a window and print the result.

Script tokens, separated by spaces:
  a        advance
  r        retreat
  aa       advance twice in the same frame
  x        close the book instantly
  s=<0-1>  scroll to a ratio (scroll mode)

Each token runs on its own frame and the book animates until it settles.`,
		Example: `  folio simulate --script "a a r a"
  folio simulate --mode scroll --script "s=0.5 s=1"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(flags)
			if err != nil {
				return err
			}
			defer logger.Sync()

			cmds, err := simulate.ParseScript(script)
			if err != nil {
				return err
			}
			rep, err := simulate.Simulate(cfg, cmds, fps)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "frames: %d  accepted: %d  leaf: %d\n", rep.Frames, rep.Accepted, rep.Leaf)
			for _, c := range rep.Changes {
				fmt.Fprintf(out, "  frame %5d  leaf %d\n", c.Frame, c.Leaf)
			}
			fmt.Fprintln(out, "final poses:")
			for _, p := range rep.Poses {
				pos := p.Pose.Position
				fmt.Fprintf(out, "  %-12s pos=(%.3f, %.3f, %.3f) rot=%.4f\n", p.Name, pos.X, pos.Y, pos.Z, p.Pose.Rotation)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&script, "script", "s", "a", "Actions to run")
	cmd.Flags().IntVar(&fps, "fps", 60, "Simulated frame rate")
	return cmd
}
