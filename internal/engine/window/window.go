// Package window opens the SDL2 window the book is drawn into and owns its
// OpenGL context. It doubles as the camera's viewport source.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/folio/internal/logger"
)

func init() {
	// GL and SDL video calls must stay on the main thread.
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// glAttributes requests a 4.1 core context, the newest macOS provides,
// double buffered with a 24-bit depth buffer for the page stack.
var glAttributes = []struct {
	attr  sdl.GLattr
	value int
}{
	{sdl.GL_CONTEXT_MAJOR_VERSION, 4},
	{sdl.GL_CONTEXT_MINOR_VERSION, 1},
	{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
	{sdl.GL_DOUBLEBUFFER, 1},
	{sdl.GL_DEPTH_SIZE, 24},
}

// flags returns the SDL window flags for cfg.
func (cfg Config) flags() uint32 {
	f := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		f |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	return f
}

// swapInterval maps the vsync setting to SDL's swap interval, preferring
// adaptive sync when it is available.
func (cfg Config) swapInterval() []int {
	if !cfg.VSync {
		return []int{0}
	}
	return []int{-1, 1}
}

// Window is an SDL2 window with a current GL context.
type Window struct {
	win *sdl.Window
	gl  sdl.GLContext
	log *zap.Logger
}

// New opens the window and makes its GL context current.
func New(cfg Config) (w *Window, err error) {
	log := logger.Named("window")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("init SDL: %w", err)
	}
	w = &Window{log: log}
	defer func() {
		if err != nil {
			w.Close()
			w = nil
		}
	}()

	for _, a := range glAttributes {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			return w, fmt.Errorf("GL attribute %d: %w", a.attr, err)
		}
	}

	w.win, err = sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), cfg.flags())
	if err != nil {
		return w, fmt.Errorf("create window: %w", err)
	}
	if w.gl, err = w.win.GLCreateContext(); err != nil {
		return w, fmt.Errorf("create GL context: %w", err)
	}

	interval := 0
	for _, n := range cfg.swapInterval() {
		if sdl.GLSetSwapInterval(n) == nil {
			interval = n
			break
		}
	}
	if cfg.VSync && interval == 0 {
		log.Warn("vsync unavailable, presenting immediately")
	}

	ww, wh := w.Size()
	dw, dh := w.DrawableSize()
	log.Info("window opened",
		zap.String("title", cfg.Title),
		zap.Int("width", ww), zap.Int("height", wh),
		zap.Int("drawable_width", dw), zap.Int("drawable_height", dh),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Int("swap_interval", interval))
	return w, nil
}

// Close releases the context and window and shuts SDL down.
func (w *Window) Close() {
	if w.gl != nil {
		sdl.GLDeleteContext(w.gl)
		w.gl = nil
	}
	if w.win != nil {
		w.win.Destroy()
		w.win = nil
	}
	sdl.Quit()
	w.log.Info("window closed")
}

// SwapBuffers presents the frame.
func (w *Window) SwapBuffers() {
	w.win.GLSwap()
}

// Size returns the window size in event coordinates, the space mouse
// positions are reported in.
func (w *Window) Size() (int, int) {
	width, height := w.win.GetSize()
	return int(width), int(height)
}

// DrawableSize returns the framebuffer size in pixels. On high-DPI
// displays it is larger than Size.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.win.GLGetDrawableSize()
	return int(width), int(height)
}
