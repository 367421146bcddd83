package surface

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/folio/internal/assets"
	"github.com/Faultbox/folio/internal/config"
	"github.com/Faultbox/folio/internal/logger"
)

// Library owns every page source and implements Provider. Video pages
// load in the background and fall back to their page art until ready.
type Library struct {
	fallback []*Still
	sources  []Source // nil where the page has only art
	exposed  int      // -1 when no page is exposed
	ready    []bool   // Source readiness last seen by Advance
	dirty    []int    // Pages whose frame changed outside Advance

	cancel context.CancelFunc
	wg     sync.WaitGroup
	log    *zap.Logger
}

// NewLibrary builds art for every page, decodes still textures and starts
// loading frame sequences. A texture that fails to load is logged and the
// page keeps its art.
func NewLibrary(ctx context.Context, cfg config.BookConfig, size int, files *assets.Manager) (*Library, error) {
	ctx, cancel := context.WithCancel(ctx)
	l := &Library{
		fallback: make([]*Still, cfg.Pages),
		sources:  make([]Source, cfg.Pages),
		ready:    make([]bool, cfg.Pages),
		exposed:  -1,
		cancel:   cancel,
		log:      logger.Named("surface"),
	}

	style := ArtStyle{Size: size, FontPath: cfg.FontPath, Number: true}
	for i := range cfg.Pages {
		img, err := RenderPage(i, PageColor(i, cfg.PageColors), style)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("page %d art: %w", i, err)
		}
		l.fallback[i] = NewStill(img)
	}

	for i, path := range cfg.PageTextures {
		if i < 0 || i >= cfg.Pages {
			l.log.Warn("texture for missing page", zap.Int("page", i), zap.String("path", path))
			continue
		}
		data, err := files.Load(path)
		if err == nil {
			var img *image.RGBA
			if img, err = Decode(data, size); err == nil {
				l.sources[i] = NewStill(img)
				continue
			}
		}
		l.log.Warn("page texture unavailable, using art", zap.Int("page", i), zap.Error(err))
	}

	for i, dir := range cfg.PageVideos {
		if i < 0 || i >= cfg.Pages {
			l.log.Warn("video for missing page", zap.Int("page", i), zap.String("dir", dir))
			continue
		}
		seq := NewFrameSequence(cfg.VideoFPS)
		l.sources[i] = seq
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			frames, err := files.List(dir, FrameExts...)
			if err == nil {
				err = seq.Load(ctx, frames, size, files.Load)
			}
			if err != nil {
				l.log.Warn("page video unavailable, using art", zap.Int("page", i), zap.Error(err))
				return
			}
			l.log.Debug("page video loaded", zap.Int("page", i), zap.Int("frames", seq.Len()))
		}()
	}
	return l, nil
}

// Len returns the number of pages.
func (l *Library) Len() int {
	return len(l.fallback)
}

// Source returns the live source for page, or false when the page has none
// or it is not ready yet.
func (l *Library) Source(page int) (Source, bool) {
	if page < 0 || page >= len(l.sources) {
		return nil, false
	}
	src := l.sources[page]
	if src == nil || !src.Ready() {
		return nil, false
	}
	return src, true
}

// Frame returns what page should display now.
func (l *Library) Frame(page int) *image.RGBA {
	if src, ok := l.Source(page); ok {
		return src.Frame()
	}
	if page < 0 || page >= len(l.fallback) {
		return nil
	}
	return l.fallback[page].Frame()
}

// Exposed returns the page whose source is active, or -1.
func (l *Library) Exposed() int {
	return l.exposed
}

// Expose activates page and deactivates the previously exposed one.
// Negative page deactivates only.
func (l *Library) Expose(page int) {
	if page == l.exposed {
		return
	}
	if prev := l.exposed; prev >= 0 && l.sources[prev] != nil {
		l.sources[prev].Deactivate()
		l.dirty = append(l.dirty, prev)
	}
	l.exposed = -1
	if page >= 0 && page < len(l.sources) {
		l.exposed = page
		if src := l.sources[page]; src != nil {
			src.Activate()
		}
	}
	l.log.Debug("exposed page", zap.Int("page", l.exposed))
}

// Advance steps every dynamic source and returns the pages whose frame
// changed, including sources that finished loading since the last call.
func (l *Library) Advance(dt time.Duration) []int {
	changed := l.dirty
	l.dirty = nil
	for i, src := range l.sources {
		if src == nil || !src.Ready() {
			continue
		}
		if !l.ready[i] {
			l.ready[i] = true
			changed = append(changed, i)
			continue
		}
		if src.Dynamic() && src.Advance(dt) {
			changed = append(changed, i)
		}
	}
	return changed
}

// Close stops background loading and waits for it to finish.
func (l *Library) Close() {
	l.cancel()
	l.wg.Wait()
}
