// Package mask defines the geometric model for local-adjustment masks: typed
// sub-mask parameters, validated immutable mutation, and the brush stroke log
// with its eraser semantics.
//
// All geometry is stored in uncropped image-space pixel coordinates. Display
// coordinates exist only transiently inside the editor.
package mask

import (
	"image"
	"math"

	"github.com/google/uuid"

	"github.com/go-darkroom/darkroom/pkg/geometry"
)

// minRadius keeps radial ellipses invertible; zero radii are clamped up to it.
const minRadius = 0.001

// Kind identifies the geometry variant of a sub-mask.
type Kind int

const (
	KindRadial Kind = iota
	KindLinear
	KindBrush
	KindAISubject
	KindAIForeground
	KindQuickEraser
)

// String returns a human-readable representation of the mask kind.
func (k Kind) String() string {
	switch k {
	case KindRadial:
		return "radial"
	case KindLinear:
		return "linear"
	case KindBrush:
		return "brush"
	case KindAISubject:
		return "ai-subject"
	case KindAIForeground:
		return "ai-foreground"
	case KindQuickEraser:
		return "quick-eraser"
	default:
		return "unknown"
	}
}

// IsAI reports whether the kind is resolved by the segmentation collaborator.
func (k Kind) IsAI() bool {
	return k == KindAISubject || k == KindAIForeground || k == KindQuickEraser
}

// Mode controls how a sub-mask contributes to its container's pixel
// compositing. It never changes how the overlay outline is drawn, only the
// stroke color that distinguishes subtractive shapes.
type Mode int

const (
	Additive Mode = iota
	Subtractive
)

// String returns a human-readable representation of the mode.
func (m Mode) String() string {
	if m == Subtractive {
		return "subtractive"
	}
	return "additive"
}

// RadialParams describes an ellipse in image space.
type RadialParams struct {
	CenterX         float64 `yaml:"center_x" json:"centerX"`
	CenterY         float64 `yaml:"center_y" json:"centerY"`
	RadiusX         float64 `yaml:"radius_x" json:"radiusX"`
	RadiusY         float64 `yaml:"radius_y" json:"radiusY"`
	RotationDegrees float64 `yaml:"rotation" json:"rotation"`
	Feather         float64 `yaml:"feather" json:"feather"`
}

// LinearParams describes a gradient band in image space. Range is the
// half-band width in image pixels.
type LinearParams struct {
	StartX float64 `yaml:"start_x" json:"startX"`
	StartY float64 `yaml:"start_y" json:"startY"`
	EndX   float64 `yaml:"end_x" json:"endX"`
	EndY   float64 `yaml:"end_y" json:"endY"`
	Range  float64 `yaml:"range" json:"range"`
}

// Start returns the gradient's start point.
func (p LinearParams) Start() geometry.Point {
	return geometry.Point{X: p.StartX, Y: p.StartY}
}

// End returns the gradient's end point.
func (p LinearParams) End() geometry.Point {
	return geometry.Point{X: p.EndX, Y: p.EndY}
}

// AngleRadians returns the band's direction angle. A degenerate zero-length
// direction yields 0 rather than NaN.
func (p LinearParams) AngleRadians() float64 {
	dx := p.EndX - p.StartX
	dy := p.EndY - p.StartY
	if dx == 0 && dy == 0 {
		return 0
	}
	return math.Atan2(dy, dx)
}

// PerpendicularUnit returns the unit vector perpendicular to the band
// direction. A zero-length direction defaults to (0, 1) so range math never
// divides by zero during a degenerate drag.
func (p LinearParams) PerpendicularUnit() geometry.Point {
	dx := p.EndX - p.StartX
	dy := p.EndY - p.StartY
	length := math.Hypot(dx, dy)
	if length == 0 {
		return geometry.Point{X: 0, Y: 1}
	}
	return geometry.Point{X: -dy / length, Y: dx / length}
}

// AIParams describes a segmentation-backed sub-mask. The bitmap handle is
// produced asynchronously by the external collaborator and cached until Grow
// or Feather invalidate it; it is never persisted.
type AIParams struct {
	BitmapRef image.Image `yaml:"-" json:"-"`
	Grow      int         `yaml:"grow" json:"grow"`
	Feather   int         `yaml:"feather" json:"feather"`
}

// SubMask is one geometric selection primitive inside a Container. Exactly
// one of the variant parameter fields is set, matching Kind.
//
// SubMask values are treated as immutable snapshots: the With* setters
// validate, clone, and return a new value, so partial states are never
// observable.
type SubMask struct {
	ID      string        `yaml:"id" json:"id"`
	Kind    Kind          `yaml:"kind" json:"kind"`
	Mode    Mode          `yaml:"mode" json:"mode"`
	Visible bool          `yaml:"visible" json:"visible"`
	Radial  *RadialParams `yaml:"radial,omitempty" json:"radial,omitempty"`
	Linear  *LinearParams `yaml:"linear,omitempty" json:"linear,omitempty"`
	Brush   *BrushParams  `yaml:"brush,omitempty" json:"brush,omitempty"`
	AI      *AIParams     `yaml:"ai,omitempty" json:"ai,omitempty"`
}

// NewRadial creates a visible additive radial sub-mask.
func NewRadial(params RadialParams) SubMask {
	m := SubMask{ID: uuid.NewString(), Kind: KindRadial, Visible: true}
	return m.WithRadial(params)
}

// NewLinear creates a visible additive linear sub-mask.
func NewLinear(params LinearParams) SubMask {
	m := SubMask{ID: uuid.NewString(), Kind: KindLinear, Visible: true}
	return m.WithLinear(params)
}

// NewBrush creates a visible additive brush sub-mask with an empty stroke log.
func NewBrush() SubMask {
	return SubMask{
		ID:      uuid.NewString(),
		Kind:    KindBrush,
		Visible: true,
		Brush:   &BrushParams{},
	}
}

// NewAI creates a visible additive segmentation sub-mask of the given kind.
func NewAI(kind Kind) SubMask {
	if !kind.IsAI() {
		kind = KindAISubject
	}
	return SubMask{
		ID:      uuid.NewString(),
		Kind:    kind,
		Visible: true,
		AI:      &AIParams{},
	}
}

// WithRadial returns a copy with validated radial parameters: radii clamped
// strictly positive and rotation normalized to [-180, 180).
func (m SubMask) WithRadial(params RadialParams) SubMask {
	if params.RadiusX < minRadius {
		params.RadiusX = minRadius
	}
	if params.RadiusY < minRadius {
		params.RadiusY = minRadius
	}
	params.RotationDegrees = NormalizeDegrees(params.RotationDegrees)
	params.Feather = clamp(params.Feather, 0, 1)
	m.Radial = &params
	return m
}

// WithLinear returns a copy with validated linear parameters. Start and end
// may coincide transiently during a drag; only the range is clamped.
func (m SubMask) WithLinear(params LinearParams) SubMask {
	if params.Range < 0 {
		params.Range = 0
	}
	m.Linear = &params
	return m
}

// WithAI returns a copy with clamped segmentation parameters. Changing Grow
// or Feather invalidates the cached bitmap handle.
func (m SubMask) WithAI(params AIParams) SubMask {
	params.Grow = clampInt(params.Grow, -100, 100)
	params.Feather = clampInt(params.Feather, 0, 100)
	if m.AI != nil && (params.Grow != m.AI.Grow || params.Feather != m.AI.Feather) {
		params.BitmapRef = nil
	}
	m.AI = &params
	return m
}

// WithVisible returns a copy with the visibility flag set.
func (m SubMask) WithVisible(visible bool) SubMask {
	m.Visible = visible
	return m
}

// WithMode returns a copy with the compositing mode set.
func (m SubMask) WithMode(mode Mode) SubMask {
	m.Mode = mode
	return m
}

// NormalizeDegrees wraps an angle into [-180, 180).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg+180, 360)
	if deg < 0 {
		deg += 360
	}
	return deg - 180
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
