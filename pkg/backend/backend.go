// Package backend is the editor's boundary to the external image-processing
// collaborator. The editor never computes pixels itself: previews, mask
// overlay bitmaps, and AI segmentations all arrive asynchronously through the
// interfaces here, debounced and keyed against a request sequence so stale
// responses are never applied.
package backend

import (
	"context"
	"image"

	"github.com/go-darkroom/darkroom/pkg/curve"
	"github.com/go-darkroom/darkroom/pkg/geometry"
	"github.com/go-darkroom/darkroom/pkg/mask"
)

// SegmentMode selects what the segmentation collaborator extracts.
type SegmentMode int

const (
	SegmentSubject SegmentMode = iota
	SegmentForeground
	SegmentEraser
)

// String returns a human-readable representation of the segment mode.
func (m SegmentMode) String() string {
	switch m {
	case SegmentForeground:
		return "foreground"
	case SegmentEraser:
		return "eraser"
	default:
		return "subject"
	}
}

// SegmentModeForKind maps an AI mask kind to its segmentation mode.
func SegmentModeForKind(k mask.Kind) SegmentMode {
	switch k {
	case mask.KindAIForeground:
		return SegmentForeground
	case mask.KindQuickEraser:
		return SegmentEraser
	default:
		return SegmentSubject
	}
}

// SegmentProgress reports an intermediate collaborator state, such as a
// segmentation model still downloading, before a result is produced.
type SegmentProgress struct {
	Stage string
}

// PreviewRequest carries everything the collaborator needs to composite the
// edited image.
type PreviewRequest struct {
	Curves           curve.CurveSet
	Masks            []mask.Container
	Crop             *geometry.Rect
	Rotation         float64
	OrientationSteps int
}

// Renderer is the external preview/overlay renderer.
//
// RenderMaskOverlay returns a translucent raster visualization of one mask
// container at the given output resolution; a nil image with a nil error
// means "no overlay" (empty or invisible mask).
type Renderer interface {
	RenderPreview(ctx context.Context, req PreviewRequest) (image.Image, error)
	RenderMaskOverlay(ctx context.Context, def *mask.Container, width, height int, scale float64, cropOffset geometry.Point) (image.Image, error)
}

// Segmenter is the external AI segmentation collaborator. The seed geometry
// is the image-space bounding box of the user's stroke. The progress callback
// is optional and may be invoked before the result resolves.
type Segmenter interface {
	SegmentRegion(ctx context.Context, seed geometry.Rect, mode SegmentMode, progress func(SegmentProgress)) (image.Image, error)
}
