package geometry

// RenderTransform maps image-space coordinates to display-space coordinates.
//
// Mask geometry is stored in uncropped image pixels; the preview on screen is
// the cropped image scaled to fit its container. Mapping an image point to the
// screen therefore subtracts the crop origin, scales, and offsets:
//
//	display = (image - cropOrigin) * Scale + Offset
//
// ToImage is the exact algebraic inverse of ToDisplay. Both are pure; the
// transform itself is recomputed, never mutated, when the container size,
// effective image dimensions, crop, or orientation change.
type RenderTransform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Identity returns the neutral transform (scale 1, no offsets).
func Identity() RenderTransform {
	return RenderTransform{Scale: 1}
}

// Valid reports whether the transform can be inverted.
func (t RenderTransform) Valid() bool {
	return t.Scale > 0
}

// ToDisplay converts an uncropped image-space point to display space.
func (t RenderTransform) ToDisplay(p Point, cropOrigin Point) Point {
	return Point{
		X: (p.X-cropOrigin.X)*t.Scale + t.OffsetX,
		Y: (p.Y-cropOrigin.Y)*t.Scale + t.OffsetY,
	}
}

// ToImage converts a display-space point back to uncropped image space.
func (t RenderTransform) ToImage(p Point, cropOrigin Point) Point {
	return Point{
		X: (p.X-t.OffsetX)/t.Scale + cropOrigin.X,
		Y: (p.Y-t.OffsetY)/t.Scale + cropOrigin.Y,
	}
}

// ToImageLength converts a display-space length to image space.
func (t RenderTransform) ToImageLength(v float64) float64 {
	return v / t.Scale
}

// ToDisplayLength converts an image-space length to display space.
func (t RenderTransform) ToDisplayLength(v float64) float64 {
	return v * t.Scale
}

// FitTransform computes the transform that letterboxes an image of the given
// dimensions into the container, centering it. Orientation steps 1 and 3
// (90 and 270 degrees) swap the effective width and height.
//
// If the container is unmeasured or either dimension is non-positive, the
// identity transform is returned with ok=false so callers can disable pointer
// handling until a valid measurement arrives.
func FitTransform(container Size, imageWidth, imageHeight float64, orientationSteps int) (RenderTransform, bool) {
	effectiveW, effectiveH := imageWidth, imageHeight
	if orientationSteps%2 == 1 {
		effectiveW, effectiveH = effectiveH, effectiveW
	}
	if container.IsEmpty() || effectiveW <= 0 || effectiveH <= 0 {
		return Identity(), false
	}

	scale := container.Width / effectiveW
	if h := container.Height / effectiveH; h < scale {
		scale = h
	}
	return RenderTransform{
		Scale:   scale,
		OffsetX: (container.Width - effectiveW*scale) / 2,
		OffsetY: (container.Height - effectiveH*scale) / 2,
	}, true
}
