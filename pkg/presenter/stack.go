// Package presenter manages the stack of preview bitmaps shown under the mask
// overlay. New previews fade in on top of the last good frame, so visual
// updates never flash to blank, and the stack collapses to a single layer once
// each fade completes.
package presenter

import (
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/go-darkroom/darkroom/pkg/animation"
)

// Layer is one bitmap in the crossfade stack with its animated opacity.
// Layers are ordered oldest-first; only the newest layer is non-opaque while
// its fade-in runs.
type Layer struct {
	Image   image.Image
	Opacity float64
}

// Stack is the progressive layer presenter.
//
// Reset seeds the stack on an image-identity change; Advance pushes each newly
// rendered preview with a fade-in; ShowOriginal swaps the dedicated original
// layer in and out using the same fade protocol. A nil bitmap never advances
// the stack; the last successfully displayed layer stays visible.
type Stack struct {
	fade            *animation.FadeController
	layers          []Layer
	lastEdited      image.Image
	original        image.Image
	showingOriginal bool
	log             *zap.Logger
}

// NewStack creates a presenter whose fades run for the given duration.
func NewStack(fadeDuration time.Duration, log *zap.Logger) *Stack {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Stack{
		fade: animation.NewFadeController(fadeDuration),
		log:  log,
	}
	s.fade.Curve = animation.EaseOut
	s.fade.AddListener(func() {
		if n := len(s.layers); n > 0 {
			s.layers[n-1].Opacity = s.fade.Value
		}
	})
	s.fade.AddStatusListener(func(status animation.FadeStatus) {
		if status == animation.FadeCompleted {
			s.collapse()
		}
	})
	return s
}

// Reset clears the stack for a new image identity and seeds it with the best
// immediately available bitmap (thumbnail, else original). Either argument
// may be nil.
func (s *Stack) Reset(seed, original image.Image) {
	s.fade.Stop()
	s.lastEdited = nil
	s.original = original
	s.showingOriginal = false
	s.layers = s.layers[:0]
	if seed == nil {
		seed = original
	}
	if seed != nil {
		s.layers = append(s.layers, Layer{Image: seed, Opacity: 1})
	}
}

// Advance pushes a newly rendered preview bitmap. Bitmaps that are nil or
// reference-identical to the last applied preview are ignored. While the
// original is being shown the bitmap is recorded but not displayed until the
// toggle returns.
func (s *Stack) Advance(img image.Image) {
	if img == nil {
		s.log.Debug("presenter: dropping absent preview bitmap")
		return
	}
	if img == s.lastEdited {
		return
	}
	s.lastEdited = img
	if s.showingOriginal {
		return
	}
	s.push(img)
}

// ShowOriginal toggles the dedicated original layer. Toggling back re-pushes
// the last known edited bitmap with the same fade protocol.
func (s *Stack) ShowOriginal(on bool) {
	if on == s.showingOriginal {
		return
	}
	s.showingOriginal = on
	if on {
		if s.original != nil {
			s.push(s.original)
		}
		return
	}
	if s.lastEdited != nil {
		s.push(s.lastEdited)
	}
}

// push appends a layer at opacity zero and starts its fade-in. Layers below
// it snap to full opacity; they are covered as the new layer fades in and are
// dropped once the fade completes, bounding the stack at O(1) steady-state.
func (s *Stack) push(img image.Image) {
	for i := range s.layers {
		s.layers[i].Opacity = 1
	}
	s.layers = append(s.layers, Layer{Image: img, Opacity: 0})
	s.fade.Restart()
}

// collapse drops every layer hidden beneath the newest fully opaque one.
func (s *Stack) collapse() {
	if n := len(s.layers); n > 1 {
		top := s.layers[n-1]
		top.Opacity = 1
		s.layers = append(s.layers[:0], top)
	} else if n == 1 {
		s.layers[0].Opacity = 1
	}
}

// Layers returns the current crossfade stack, oldest first.
func (s *Stack) Layers() []Layer {
	return s.layers
}

// ShowingOriginal reports whether the original toggle is active.
func (s *Stack) ShowingOriginal() bool {
	return s.showingOriginal
}

// Dispose stops any running fade and releases the controller.
func (s *Stack) Dispose() {
	s.fade.Dispose()
}
