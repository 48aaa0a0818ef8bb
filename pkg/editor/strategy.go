package editor

import (
	"math"

	"github.com/go-darkroom/darkroom/pkg/geometry"
	"github.com/go-darkroom/darkroom/pkg/mask"
)

// strategy is the per-kind mutation policy. Every method takes the snapshot
// captured at gesture start plus image-space pointer data and returns the new
// snapshot; the editor commits it through the container.
type strategy interface {
	// onDrag translates the whole shape by an image-space delta.
	onDrag(orig mask.SubMask, delta geometry.Point) mask.SubMask
	// onTransform folds a renderer node's accumulated transform into the
	// shape parameters.
	onTransform(orig mask.SubMask, node NodeTransform, view View) mask.SubMask
	// onPointDrag moves one endpoint handle to an image-space position.
	onPointDrag(orig mask.SubMask, handle Handle, p geometry.Point) mask.SubMask
	// onRangeDrag adjusts a band half-width from an image-space pointer
	// position.
	onRangeDrag(orig mask.SubMask, p geometry.Point) mask.SubMask
}

func strategyFor(kind mask.Kind) strategy {
	switch kind {
	case mask.KindRadial:
		return radialStrategy{}
	case mask.KindLinear:
		return linearStrategy{}
	default:
		return inertStrategy{}
	}
}

// radialStrategy edits the ellipse mask.
type radialStrategy struct{}

func (radialStrategy) onDrag(orig mask.SubMask, delta geometry.Point) mask.SubMask {
	if orig.Radial == nil {
		return orig
	}
	p := *orig.Radial
	p.CenterX += delta.X
	p.CenterY += delta.Y
	return orig.WithRadial(p)
}

// onTransform reads the node's accumulated scale and folds it into the image
// space radii. The display-space radius is divided back by the render scale,
// so the node can be reset to scale 1 without the shape compounding growth
// across repeated transforms.
func (radialStrategy) onTransform(orig mask.SubMask, node NodeTransform, view View) mask.SubMask {
	if orig.Radial == nil {
		return orig
	}
	p := *orig.Radial

	scale := view.Transform.Scale
	displayRX := p.RadiusX * scale * node.ScaleX
	displayRY := p.RadiusY * scale * node.ScaleY
	p.RadiusX = view.Transform.ToImageLength(displayRX)
	p.RadiusY = view.Transform.ToImageLength(displayRY)

	center := view.ToImage(node.Center)
	p.CenterX = center.X
	p.CenterY = center.Y
	p.RotationDegrees = node.RotationDegrees
	return orig.WithRadial(p)
}

func (radialStrategy) onPointDrag(orig mask.SubMask, _ Handle, _ geometry.Point) mask.SubMask {
	return orig
}

func (radialStrategy) onRangeDrag(orig mask.SubMask, _ geometry.Point) mask.SubMask {
	return orig
}

// linearStrategy edits the gradient band in its local rotated frame: the body
// translates start and end together, endpoint handles move one end, and the
// range rails move only along the band's perpendicular axis.
type linearStrategy struct{}

func (linearStrategy) onDrag(orig mask.SubMask, delta geometry.Point) mask.SubMask {
	if orig.Linear == nil {
		return orig
	}
	p := *orig.Linear
	p.StartX += delta.X
	p.StartY += delta.Y
	p.EndX += delta.X
	p.EndY += delta.Y
	return orig.WithLinear(p)
}

func (linearStrategy) onTransform(orig mask.SubMask, _ NodeTransform, _ View) mask.SubMask {
	return orig
}

func (linearStrategy) onPointDrag(orig mask.SubMask, handle Handle, p geometry.Point) mask.SubMask {
	if orig.Linear == nil {
		return orig
	}
	params := *orig.Linear
	switch handle {
	case HandleStartPoint:
		params.StartX, params.StartY = p.X, p.Y
	case HandleEndPoint:
		params.EndX, params.EndY = p.X, p.Y
	default:
		return orig
	}
	return orig.WithLinear(params)
}

// onRangeDrag projects the pointer onto the band's perpendicular axis; the
// absolute projected distance from the center line becomes the new half-band
// width. Start and end are never touched.
func (linearStrategy) onRangeDrag(orig mask.SubMask, p geometry.Point) mask.SubMask {
	if orig.Linear == nil {
		return orig
	}
	params := *orig.Linear
	perp := params.PerpendicularUnit()
	params.Range = math.Abs(p.Sub(params.Start()).Dot(perp))
	return orig.WithLinear(params)
}

// inertStrategy covers kinds with no direct shape handles (brush, AI): their
// editing goes through stroke capture instead.
type inertStrategy struct{}

func (inertStrategy) onDrag(orig mask.SubMask, _ geometry.Point) mask.SubMask { return orig }
func (inertStrategy) onTransform(orig mask.SubMask, _ NodeTransform, _ View) mask.SubMask {
	return orig
}
func (inertStrategy) onPointDrag(orig mask.SubMask, _ Handle, _ geometry.Point) mask.SubMask {
	return orig
}
func (inertStrategy) onRangeDrag(orig mask.SubMask, _ geometry.Point) mask.SubMask { return orig }
