// Package compositor decides how a container's sub-masks are layered: the
// interactive overlay draw order that keeps the active shape's handles on
// top, and the pixel compositing request sent to the external renderer.
package compositor

import (
	"image/color"

	"github.com/go-darkroom/darkroom/pkg/mask"
)

// DrawOrder returns the sub-masks to draw interactively, in paint order.
//
// Invisible sub-masks are skipped entirely. The active sub-mask is moved to
// the end so it is drawn last and its selection handles are never occluded by
// sibling shapes; the relative order of all other sub-masks is preserved.
func DrawOrder(subMasks []mask.SubMask, activeID string) []mask.SubMask {
	ordered := make([]mask.SubMask, 0, len(subMasks))
	var active *mask.SubMask
	for i := range subMasks {
		m := subMasks[i]
		if !m.Visible {
			continue
		}
		if m.ID == activeID {
			active = &subMasks[i]
			continue
		}
		ordered = append(ordered, m)
	}
	if active != nil {
		ordered = append(ordered, *active)
	}
	return ordered
}

// CompositeRequest returns every sub-mask of the container for the backend's
// pixel compositing, invisible ones included; visibility only affects the
// interactive overlay, not the rendered adjustment.
func CompositeRequest(c *mask.Container) []mask.SubMask {
	out := make([]mask.SubMask, len(c.SubMasks))
	copy(out, c.SubMasks)
	return out
}

// Style describes how one sub-mask outline is drawn on the overlay.
type Style struct {
	Stroke      color.NRGBA
	StrokeWidth float64
	ShowHandles bool
}

var (
	additiveStroke    = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xE0}
	subtractiveStroke = color.NRGBA{R: 0xFF, G: 0x5A, B: 0x5A, A: 0xE0}
	activeStroke      = color.NRGBA{R: 0x4C, G: 0xC2, B: 0xFF, A: 0xFF}
)

// OverlayStyle picks the stroke for a sub-mask outline. Mode changes only the
// color (subtractive shapes get a distinguishing stroke) while the active
// shape additionally shows its drag handles.
func OverlayStyle(m mask.SubMask, active bool) Style {
	s := Style{Stroke: additiveStroke, StrokeWidth: 1.5}
	if active {
		s.Stroke = activeStroke
		s.StrokeWidth = 2
		s.ShowHandles = true
	}
	// Subtractive keeps its distinguishing color even while active.
	if m.Mode == mask.Subtractive {
		s.Stroke = subtractiveStroke
	}
	return s
}
