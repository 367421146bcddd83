package config

import "github.com/spf13/pflag"

// Flags holds command-line overrides. Only flags the user actually set are
// applied, so file values survive unset flags.
type Flags struct {
	fs *pflag.FlagSet

	ConfigPath string
	Debug      bool
	Mode       string
	Pages      int
	Width      int
	Height     int
	Fullscreen bool
	LogFile    string
}

// Register adds the flags to fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	f.fs = fs
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Mode, "mode", "", "Interaction mode: click or scroll")
	fs.IntVar(&f.Pages, "pages", 0, "Number of interior pages")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	fs.BoolVar(&f.Fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.StringVar(&f.LogFile, "log-file", "", "Write logs to a rotating file")
}

func (f *Flags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

// apply copies set flags onto cfg.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.changed("mode") {
		cfg.Book.Mode = f.Mode
	}
	if f.changed("pages") {
		cfg.Book.Pages = f.Pages
	}
	if f.changed("width") {
		cfg.Graphics.Width = f.Width
	}
	if f.changed("height") {
		cfg.Graphics.Height = f.Height
	}
	if f.changed("fullscreen") {
		cfg.Graphics.Fullscreen = f.Fullscreen
	}
	if f.changed("log-file") {
		cfg.Logging.LogFile = f.LogFile
	}
}
