package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Book.Pages != 5 {
		t.Errorf("expected 5 pages, got %d", cfg.Book.Pages)
	}
	if cfg.Book.Mode != ModeClick {
		t.Errorf("expected click mode, got %s", cfg.Book.Mode)
	}
	if cfg.Book.CoverWidth != 6.5 || cfg.Book.PageWidth != 6.4 {
		t.Errorf("unexpected widths cover=%v page=%v", cfg.Book.CoverWidth, cfg.Book.PageWidth)
	}
	if cfg.Graphics.FOV != 35 {
		t.Errorf("expected fov 35, got %v", cfg.Graphics.FOV)
	}
	if cfg.Animation.SpineStagger <= 0 || cfg.Animation.SpineStagger >= cfg.Animation.CoverDuration {
		t.Errorf("spine stagger %v should be a small offset of %v", cfg.Animation.SpineStagger, cfg.Animation.CoverDuration)
	}
	want := []float32{0.46, 0.8, 0.94, 0.99}
	for i, th := range cfg.Deform.Thresholds {
		if th != want[i] {
			t.Errorf("threshold %d = %v, want %v", i, th, want[i])
		}
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "folio.yaml")

	yamlContent := `
book:
  pages: 12
  mode: scroll
  page_textures:
    0: cover-art.png
  page_videos:
    3: frames/intro

animation:
  cover_duration: 2s
  page_easing: out-cubic

deform:
  thresholds: [0.4, 0.7, 0.9, 0.98]

logging:
  level: "debug"
  log_file: "folio.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Book.Pages != 12 {
		t.Errorf("expected 12 pages, got %d", cfg.Book.Pages)
	}
	if cfg.Book.Mode != ModeScroll {
		t.Errorf("expected scroll mode, got %s", cfg.Book.Mode)
	}
	if cfg.Book.PageTextures[0] != "cover-art.png" {
		t.Errorf("expected texture for page 0, got %v", cfg.Book.PageTextures)
	}
	if cfg.Book.PageVideos[3] != "frames/intro" {
		t.Errorf("expected video for page 3, got %v", cfg.Book.PageVideos)
	}
	if cfg.Animation.CoverDuration != 2*time.Second {
		t.Errorf("expected cover duration 2s, got %v", cfg.Animation.CoverDuration)
	}
	if cfg.Animation.PageEasing != "out-cubic" {
		t.Errorf("expected out-cubic, got %s", cfg.Animation.PageEasing)
	}
	if cfg.Deform.Thresholds[0] != 0.4 || len(cfg.Deform.Thresholds) != 4 {
		t.Errorf("unexpected thresholds %v", cfg.Deform.Thresholds)
	}

	// Unset values keep their defaults.
	if cfg.Book.PageWidth != 6.4 {
		t.Errorf("expected default page width, got %v", cfg.Book.PageWidth)
	}
	if cfg.Animation.PageDuration != time.Second {
		t.Errorf("expected default page duration, got %v", cfg.Animation.PageDuration)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/folio.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero pages", func(c *Config) { c.Book.Pages = 0 }},
		{"too many pages", func(c *Config) { c.Book.Pages = MaxPages + 1 }},
		{"bad mode", func(c *Config) { c.Book.Mode = "swipe" }},
		{"negative width", func(c *Config) { c.Book.PageWidth = -1 }},
		{"no segments", func(c *Config) { c.Book.PageSegments = 0 }},
		{"zero duration", func(c *Config) { c.Animation.PageDuration = 0 }},
		{"three thresholds", func(c *Config) { c.Deform.Thresholds = []float32{0.4, 0.8, 0.9} }},
		{"unordered thresholds", func(c *Config) { c.Deform.Thresholds = []float32{0.5, 0.4, 0.9, 0.99} }},
		{"bend end before peak", func(c *Config) { c.Deform.BendEnd = 0.1 }},
		{"fold at edge", func(c *Config) { c.Deform.FoldRatio = 1 }},
		{"cover share full", func(c *Config) { c.Scroll.CoverShare = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	if dir := ConfigDir(); dir == "" {
		t.Error("ConfigDir() returned empty string")
	}
}

func TestApplyFlagsOnlyChanged(t *testing.T) {
	var f Flags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.Register(fs)

	if err := fs.Parse([]string{"--pages", "9", "--mode", "scroll", "--debug"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg := Default()
	cfg.Graphics.Width = 1920
	f.apply(cfg)

	if cfg.Book.Pages != 9 {
		t.Errorf("expected pages 9, got %d", cfg.Book.Pages)
	}
	if cfg.Book.Mode != ModeScroll {
		t.Errorf("expected scroll mode, got %s", cfg.Book.Mode)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}
	if cfg.Graphics.Width != 1920 {
		t.Errorf("unset width flag should not override, got %d", cfg.Graphics.Width)
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "folio.yaml")
	if err := os.WriteFile(configPath, []byte("book:\n  pages: 7\n  mode: scroll\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var f Flags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.Register(fs)
	if err := fs.Parse([]string{"--config", configPath, "--pages", "3"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg, err := Load(&f)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Book.Pages != 3 {
		t.Errorf("flag should win over file, got %d pages", cfg.Book.Pages)
	}
	if cfg.Book.Mode != ModeScroll {
		t.Errorf("file should win over default, got %s", cfg.Book.Mode)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "folio.yaml")
	if err := os.WriteFile(configPath, []byte("book:\n  pages: 99\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadFile(configPath); !errors.Is(err, ErrInvalid) {
		t.Errorf("LoadFile() = %v, want ErrInvalid", err)
	}
}

func TestSaveToAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Book.Pages = 12
	cfg.Animation.PageDuration = 750 * time.Millisecond
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if loaded.Book.Pages != 12 || loaded.Animation.PageDuration != 750*time.Millisecond {
		t.Errorf("saved values not restored: pages=%d duration=%v", loaded.Book.Pages, loaded.Animation.PageDuration)
	}
}

func TestWatchPublishesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yaml")
	if err := os.WriteFile(path, []byte("book:\n  pages: 4\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, _, err := Watch(ctx, path, nil)
	if err != nil {
		t.Fatalf("Watch() error: %v", err)
	}

	if err := os.WriteFile(path, []byte("book:\n  pages: 8\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-updates:
			if cfg.Book.Pages == 8 {
				return
			}
		case <-deadline:
			t.Fatal("no reload published within 5s")
		}
	}
}

func TestWatchKeepsFlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yaml")
	if err := os.WriteFile(path, []byte("book:\n  pages: 4\n  mode: click\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := &Flags{}
	flags.Register(fs)
	if err := fs.Parse([]string{"--pages=9", "--mode=scroll"}); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, _, err := Watch(ctx, path, flags)
	if err != nil {
		t.Fatalf("Watch() error: %v", err)
	}

	if err := os.WriteFile(path, []byte("book:\n  pages: 6\n  mode: click\ndeform:\n  bend_amplitude: 0.5\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-updates:
			if cfg.Deform.BendAmplitude != 0.5 {
				continue
			}
			if cfg.Book.Pages != 9 || cfg.Book.Mode != ModeScroll {
				t.Errorf("reload dropped flags: pages=%d mode=%s, want 9 scroll", cfg.Book.Pages, cfg.Book.Mode)
			}
			return
		case <-deadline:
			t.Fatal("no reload published within 5s")
		}
	}
}

func TestReloadAppliesFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yaml")
	if err := os.WriteFile(path, []byte("book:\n  pages: 4\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := &Flags{}
	flags.Register(fs)
	if err := fs.Parse([]string{"--pages=7"}); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	cfg, err := Reload(path, flags)
	if err != nil {
		t.Fatalf("Reload() error: %v", err)
	}
	if cfg.Book.Pages != 7 {
		t.Errorf("Reload() pages = %d, want 7", cfg.Book.Pages)
	}

	plain, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if plain.Book.Pages != 4 {
		t.Errorf("LoadFile() pages = %d, want 4", plain.Book.Pages)
	}
}
