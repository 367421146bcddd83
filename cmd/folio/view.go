package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/folio/internal/app"
	"github.com/Faultbox/folio/internal/config"
	"github.com/Faultbox/folio/internal/logger"
)

func newViewCmd(flags *config.Flags) *cobra.Command {
	opts := app.Options{}
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the book in a window",
		Long: `Open the book in an OpenGL window.

Click the right half of the window, or press Right or Space, to turn
forward; the left half, Right click, Left or Backspace turn back. In
scroll mode the mouse wheel and Up/Down move through the book. Drag to
orbit, C resets the camera, Home closes the book, F12 saves a
screenshot and Esc quits. Edits to the config file apply live.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(flags)
			if err != nil {
				return err
			}
			defer logger.Sync()

			opts.ConfigPath = config.ResolvePath(flags)
			opts.Flags = flags
			a, err := app.New(cmd.Context(), cfg, opts)
			if err != nil {
				logger.Error("failed to start viewer", zap.Error(err))
				return err
			}
			defer a.Close()

			if err := a.Run(); err != nil {
				logger.Error("viewer error", zap.Error(err))
				return err
			}
			logger.Info("viewer closed normally")
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&opts.AssetRoots, "assets", []string{"."}, "Directories searched for textures, frames and sounds")
	cmd.Flags().IntVar(&opts.FPS, "fps", 60, "Expected frame rate for scroll smoothing")
	return cmd
}
