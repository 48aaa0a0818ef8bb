package backend

import (
	"context"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/go-darkroom/darkroom/pkg/geometry"
	"github.com/go-darkroom/darkroom/pkg/mask"
)

// Client wraps a Renderer and a Segmenter with the editor's call discipline:
// debounced dispatch, stale-response discard, and failure containment. A
// failed call is logged and resolves to no bitmap: the last valid geometry
// and previous preview stay on screen; nothing is retried until the next
// natural parameter change.
type Client struct {
	renderer  Renderer
	segmenter Segmenter
	log       *zap.Logger

	preview *Debouncer
	overlay *Debouncer
	segment *Debouncer
}

// NewClient creates a client debouncing each call family at the given
// interval.
func NewClient(renderer Renderer, segmenter Segmenter, interval time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		renderer:  renderer,
		segmenter: segmenter,
		log:       log,
		preview:   NewDebouncer(interval),
		overlay:   NewDebouncer(interval),
		segment:   NewDebouncer(interval),
	}
}

// RequestPreview schedules a debounced preview render. The apply callback
// receives the bitmap only if the response is still current; failures apply
// nothing.
func (c *Client) RequestPreview(req PreviewRequest, apply func(image.Image)) {
	c.preview.Do(func(ctx context.Context, seq uint64) {
		img, err := c.renderer.RenderPreview(ctx, req)
		if err != nil {
			c.log.Warn("preview render failed", zap.Uint64("seq", seq), zap.Error(err))
			return
		}
		if !c.preview.Still(seq) {
			c.log.Debug("discarding stale preview", zap.Uint64("seq", seq))
			return
		}
		apply(img)
	})
}

// RequestOverlay schedules a debounced mask overlay render. A nil bitmap
// (empty or invisible mask) is applied as "no overlay".
func (c *Client) RequestOverlay(def *mask.Container, width, height int, scale float64, cropOffset geometry.Point, apply func(image.Image)) {
	c.overlay.Do(func(ctx context.Context, seq uint64) {
		img, err := c.renderer.RenderMaskOverlay(ctx, def, width, height, scale, cropOffset)
		if err != nil {
			c.log.Warn("overlay render failed", zap.Uint64("seq", seq), zap.Error(err))
			img = nil
		}
		if !c.overlay.Still(seq) {
			c.log.Debug("discarding stale overlay", zap.Uint64("seq", seq))
			return
		}
		apply(img)
	})
}

// RequestSegmentation schedules a debounced segmentation call. Progress
// states (such as "model downloading") are forwarded to the optional progress
// callback; the apply callback receives the mask bitmap if the response is
// still current.
func (c *Client) RequestSegmentation(seed geometry.Rect, mode SegmentMode, progress func(SegmentProgress), apply func(image.Image)) {
	c.segment.Do(func(ctx context.Context, seq uint64) {
		img, err := c.segmenter.SegmentRegion(ctx, seed, mode, progress)
		if err != nil {
			c.log.Warn("segmentation failed",
				zap.Uint64("seq", seq),
				zap.Stringer("mode", mode),
				zap.Error(err))
			img = nil
		}
		if !c.segment.Still(seq) {
			c.log.Debug("discarding stale segmentation", zap.Uint64("seq", seq))
			return
		}
		apply(img)
	})
}

// Flush forces all pending debounced work to run now.
func (c *Client) Flush() {
	c.preview.Flush()
	c.overlay.Flush()
	c.segment.Flush()
}

// Close cancels all pending and in-flight work. Used when the editor
// unmounts; late responses for the previous image are never applied.
func (c *Client) Close() {
	c.preview.Close()
	c.overlay.Close()
	c.segment.Close()
}
