// Package app runs the interactive book viewer.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/folio/internal/assets"
	"github.com/Faultbox/folio/internal/book"
	"github.com/Faultbox/folio/internal/config"
	"github.com/Faultbox/folio/internal/engine/audio"
	"github.com/Faultbox/folio/internal/engine/camera"
	"github.com/Faultbox/folio/internal/engine/debug"
	"github.com/Faultbox/folio/internal/engine/input"
	"github.com/Faultbox/folio/internal/engine/lighting"
	"github.com/Faultbox/folio/internal/engine/renderer"
	"github.com/Faultbox/folio/internal/engine/window"
	"github.com/Faultbox/folio/internal/logger"
	"github.com/Faultbox/folio/internal/surface"
)

// Options configures a viewer run.
type Options struct {
	ConfigPath string        // Watched for hot reload when set
	Flags      *config.Flags // Re-applied on every reload
	AssetRoots []string      // Searched for textures, frames and sounds
	FPS        int           // Expected frame rate for scroll smoothing
}

// App is the interactive viewer.
type App struct {
	cfg  *config.Config
	opts Options

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	book     *book.Book
	library  *surface.Library
	audio    *audio.Manager
	shots    *debug.ScreenshotCapture
	files    *assets.Manager

	updates <-chan *config.Config
	errs    <-chan error

	ctx     context.Context
	cancel  context.CancelFunc
	running bool
	log     *zap.Logger
}

// New creates the window, GL resources and book.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	a := &App{
		cfg:   cfg,
		opts:  opts,
		files: assets.NewManager(opts.AssetRoots...),
		log:   logger.Named("app"),
	}
	a.ctx, a.cancel = context.WithCancel(ctx)

	var err error
	a.book, err = book.New(cfg, opts.FPS)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("build book: %w", err)
	}

	a.library, err = surface.NewLibrary(a.ctx, cfg.Book, cfg.Graphics.TextureSize, a.files)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("page surfaces: %w", err)
	}

	a.window, err = window.New(window.Config{
		Title:      "Folio",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	dw, dh := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      dw,
		Height:     dh,
		CoverColor: cfg.Book.CoverColor,
		Sun:        sunFrom(cfg.Graphics),
	}, a.book, a.library)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.camera = camera.New(cfg.Graphics.FOV, cfg.Graphics.CameraDistance)
	a.camera.Follow(a.window)
	a.input = input.New()
	w, _ := a.window.Size()
	a.input.SetWidth(w)
	a.shots = debug.NewScreenshotCapture(cfg.Graphics.ScreenshotDir, "folio")
	a.audio = a.newAudio()

	a.book.OnLeafChanged(a.leafChanged)
	a.book.OnTransitionStart(a.transitionStarted)

	if opts.ConfigPath != "" {
		a.updates, a.errs, err = config.Watch(a.ctx, opts.ConfigPath, opts.Flags)
		if err != nil {
			a.log.Warn("config hot reload disabled", zap.Error(err))
		}
	}

	a.log.Info("viewer initialized",
		zap.Int("pages", a.book.Assembly.NumPages()),
		zap.String("mode", a.book.Mode()))
	return a, nil
}

// newAudio opens the speaker and loads the cues. Any failure leaves the
// viewer silent.
func (a *App) newAudio() *audio.Manager {
	ac := a.cfg.Audio
	if !ac.Enabled {
		return nil
	}
	m := audio.New()
	m.SetMasterVolume(ac.MasterVolume)
	m.SetSFXVolume(ac.SFXVolume)
	if err := m.Init(); err != nil {
		a.log.Warn("audio unavailable, running silent", zap.Error(err))
		return nil
	}

	for cue, path := range map[audio.Cue]string{audio.CueFlip: ac.FlipSound, audio.CueCover: ac.CoverSound} {
		if path == "" {
			m.Synthesize(cue)
			continue
		}
		data, err := a.files.Load(path)
		if err == nil {
			err = m.Load(cue, data)
		}
		if err != nil {
			a.log.Warn("sound unavailable, using synthesized cue", zap.Stringer("cue", cue), zap.Error(err))
			m.Synthesize(cue)
		}
	}
	return m
}

// Run starts the main loop.
func (a *App) Run() error {
	a.running = true
	last := time.Now()
	frames := 0
	fpsTimer := last

	a.log.Info("starting viewer loop")
	for a.running {
		now := time.Now()
		dt := now.Sub(last)
		last = now

		a.drainConfig()

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleInput(a.input.Frame())

		a.book.Tick(dt)

		for _, page := range a.library.Advance(dt) {
			a.renderer.UpdateTexture(page, a.library.Frame(page))
		}

		a.renderer.Render(a.book, a.camera)
		a.window.SwapBuffers()

		frames++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frames), zap.Duration("dt", dt))
			frames = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (a *App) handleInput(f input.Frame) {
	if f.Resized {
		a.input.SetWidth(f.Width)
		dw, dh := a.window.DrawableSize()
		a.renderer.Resize(dw, dh)
		a.camera.SetViewport(dw, dh)
	}
	if f.DragX != 0 || f.DragY != 0 {
		a.camera.HandleDrag(f.DragX, f.DragY)
	}
	if f.Wheel != 0 {
		if a.book.Mode() == config.ModeScroll {
			a.book.ScrollBy(-f.Wheel * a.cfg.Scroll.WheelStep)
		} else {
			a.camera.HandleZoom(f.Wheel)
		}
	}

	for _, act := range f.Actions {
		switch act {
		case input.ActionAdvance:
			a.book.Advance()
		case input.ActionRetreat:
			a.book.Retreat()
		case input.ActionResetCamera:
			a.camera.Reset()
		case input.ActionResetBook:
			if !a.book.Reset() {
				a.log.Debug("reset ignored while turning")
			}
		case input.ActionScreenshot:
			a.screenshot()
		}
	}
}

// drainConfig applies reloaded settings between frames.
func (a *App) drainConfig() {
	for {
		select {
		case cfg, ok := <-a.updates:
			if !ok {
				a.updates = nil
				return
			}
			if err := a.book.Reconfigure(cfg); err != nil {
				a.log.Warn("config reload rejected", zap.Error(err))
				continue
			}
			a.cfg.Animation, a.cfg.Deform, a.cfg.Scroll = cfg.Animation, cfg.Deform, cfg.Scroll
			a.renderer.SetSun(sunFrom(cfg.Graphics))
			if a.audio != nil {
				a.audio.SetMasterVolume(cfg.Audio.MasterVolume)
				a.audio.SetSFXVolume(cfg.Audio.SFXVolume)
			}
			a.log.Info("config reloaded")
		case err, ok := <-a.errs:
			if !ok {
				a.errs = nil
				return
			}
			a.log.Warn("config reload failed", zap.Error(err))
		default:
			return
		}
	}
}

func sunFrom(g config.GraphicsConfig) lighting.Sun {
	return lighting.Sun{Azimuth: g.LightAzimuth, Elevation: g.LightElevation, Ambient: g.Ambient}
}

func (a *App) leafChanged(leaf int) {
	page, ok := book.ExposedPage(leaf, a.book.Assembly.NumPages())
	if !ok {
		page = -1
	}
	a.library.Expose(page)
	a.log.Info("leaf changed", zap.Int("leaf", leaf))
}

func (a *App) transitionStarted(t book.Transition) {
	if a.audio == nil {
		return
	}
	cue := audio.CueFlip
	if t.Kind == book.OpenCover || t.Kind == book.CloseCover {
		cue = audio.CueCover
	}
	if err := a.audio.Play(cue); err != nil {
		a.log.Debug("cue not played", zap.Stringer("cue", cue), zap.Error(err))
	}
}

func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases everything New created.
func (a *App) Close() {
	a.log.Info("closing viewer")
	if a.cancel != nil {
		a.cancel()
	}
	if a.audio != nil {
		a.audio.Close()
	}
	if a.library != nil {
		a.library.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
	a.files.Close()
}
