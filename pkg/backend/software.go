package backend

import (
	"context"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/go-darkroom/darkroom/pkg/geometry"
	"github.com/go-darkroom/darkroom/pkg/mask"
)

// SoftwareRenderer is an in-process Renderer used by tests and the demo CLI.
// It is a coarse stand-in for the real collaborator: previews are the source
// image downscaled and remapped through the tone-curve LUTs; overlays are
// flat translucent coverage rasters. It makes no attempt at the real
// pipeline's color science.
type SoftwareRenderer struct {
	// Source is the decoded photograph previews are derived from.
	Source image.Image
	// LongEdge bounds the preview's longer dimension (default 1280).
	LongEdge int
}

const overlayAlpha = 0x66

// RenderPreview downscales the source and applies the luma and per-channel
// curve LUTs.
func (r *SoftwareRenderer) RenderPreview(ctx context.Context, req PreviewRequest) (image.Image, error) {
	if r.Source == nil {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src := r.Source
	if req.Crop != nil && !req.Crop.IsEmpty() {
		cropped := image.Rect(int(req.Crop.Left), int(req.Crop.Top), int(req.Crop.Right), int(req.Crop.Bottom))
		cropped = cropped.Intersect(src.Bounds())
		if !cropped.Empty() {
			window := image.NewRGBA(image.Rect(0, 0, cropped.Dx(), cropped.Dy()))
			draw.Copy(window, image.Point{}, src, cropped, draw.Src, nil)
			src = window
		}
	}

	longEdge := r.LongEdge
	if longEdge <= 0 {
		longEdge = 1280
	}
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > longEdge || h > longEdge {
		scale := float64(longEdge) / float64(max(w, h))
		w = int(float64(w) * scale)
		h = int(float64(h) * scale)
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(out, out.Bounds(), src, bounds, draw.Src, nil)

	luma := req.Curves.Luma.LUT()
	red := req.Curves.Red.LUT()
	green := req.Curves.Green.LUT()
	blue := req.Curves.Blue.LUT()
	px := out.Pix
	for i := 0; i < len(px); i += 4 {
		px[i+0] = red[luma[px[i+0]]]
		px[i+1] = green[luma[px[i+1]]]
		px[i+2] = blue[luma[px[i+2]]]
	}
	return out, nil
}

// RenderMaskOverlay rasterizes the container's visible sub-masks as a flat
// translucent coverage bitmap at the requested output resolution. Returns nil
// when nothing is visible.
func (r *SoftwareRenderer) RenderMaskOverlay(ctx context.Context, def *mask.Container, width, height int, scale float64, cropOffset geometry.Point) (image.Image, error) {
	if def == nil || width <= 0 || height <= 0 || scale <= 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	visible := make([]mask.SubMask, 0, len(def.SubMasks))
	for _, m := range def.SubMasks {
		if m.Visible {
			visible = append(visible, m)
		}
	}
	if len(visible) == 0 {
		return nil, nil
	}

	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	tint := color.NRGBA{R: 0x4C, G: 0xC2, B: 0xFF, A: overlayAlpha}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := geometry.Point{
				X: float64(x)/scale + cropOffset.X,
				Y: float64(y)/scale + cropOffset.Y,
			}
			covered := false
			for _, m := range visible {
				if !coversPoint(m, p) {
					continue
				}
				if m.Mode == mask.Subtractive {
					covered = false
				} else {
					covered = true
				}
			}
			if covered {
				out.SetNRGBA(x, y, tint)
			}
		}
	}
	return out, nil
}

// coversPoint is the coarse image-space coverage test per mask kind.
func coversPoint(m mask.SubMask, p geometry.Point) bool {
	switch m.Kind {
	case mask.KindRadial:
		if m.Radial == nil {
			return false
		}
		rad := m.Radial
		theta := -rad.RotationDegrees * math.Pi / 180
		dx := p.X - rad.CenterX
		dy := p.Y - rad.CenterY
		rx := dx*math.Cos(theta) - dy*math.Sin(theta)
		ry := dx*math.Sin(theta) + dy*math.Cos(theta)
		nx := rx / rad.RadiusX
		ny := ry / rad.RadiusY
		return nx*nx+ny*ny <= 1
	case mask.KindLinear:
		if m.Linear == nil {
			return false
		}
		perp := m.Linear.PerpendicularUnit()
		dist := p.Sub(m.Linear.Start()).Dot(perp)
		return math.Abs(dist) <= m.Linear.Range
	case mask.KindBrush:
		if m.Brush == nil {
			return false
		}
		for _, line := range m.Brush.Lines {
			if line.Tool != mask.ToolBrush {
				continue
			}
			for _, lp := range line.Points {
				if lp.Distance(p) <= line.BrushSize/2 {
					return true
				}
			}
		}
		return false
	default:
		if m.AI == nil || m.AI.BitmapRef == nil {
			return false
		}
		b := m.AI.BitmapRef.Bounds()
		x := b.Min.X + int(p.X)
		y := b.Min.Y + int(p.Y)
		if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
			return false
		}
		_, _, _, a := m.AI.BitmapRef.At(x, y).RGBA()
		return a > 0
	}
}

// BoxSegmenter is a trivial Segmenter for tests and offline use: it fills the
// seed bounding box as an opaque mask, optionally reporting one progress
// stage first.
type BoxSegmenter struct {
	Stage string
}

// SegmentRegion returns an alpha mask covering the seed rectangle.
func (s *BoxSegmenter) SegmentRegion(ctx context.Context, seed geometry.Rect, mode SegmentMode, progress func(SegmentProgress)) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if progress != nil && s.Stage != "" {
		progress(SegmentProgress{Stage: s.Stage})
	}
	w := int(math.Ceil(seed.Width()))
	h := int(math.Ceil(seed.Height()))
	if w <= 0 || h <= 0 {
		return nil, nil
	}
	out := image.NewAlpha(image.Rect(0, 0, w, h))
	for i := range out.Pix {
		out.Pix[i] = 0xFF
	}
	return out, nil
}
