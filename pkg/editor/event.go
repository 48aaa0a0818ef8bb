// Package editor implements the pointer-driven state machine that turns raw
// display-space pointer events into validated mask geometry mutations.
//
// The editor never stores display coordinates: every handler converts through
// the view passed explicitly with each event, so a stale transform can never
// be captured.
package editor

import (
	"fmt"

	"github.com/go-darkroom/darkroom/pkg/geometry"
)

// PointerPhase tags one pointer event.
type PointerPhase int

const (
	PhaseDown PointerPhase = iota
	PhaseMove
	PhaseUp
	// PhaseLeave fires when the pointer exits the drawing surface. During
	// stroke capture it commits exactly like PhaseUp; an in-progress stroke
	// is never silently discarded.
	PhaseLeave
)

// String returns a human-readable representation of the phase.
func (p PointerPhase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	case PhaseLeave:
		return "leave"
	default:
		return fmt.Sprintf("PointerPhase(%d)", int(p))
	}
}

// Handle identifies which part of the active shape a pointer event targets.
type Handle int

const (
	HandleNone Handle = iota
	HandleBody
	HandleResize
	HandleRotate
	HandleRangeRail
	HandleStartPoint
	HandleEndPoint
)

// String returns a human-readable representation of the handle.
func (h Handle) String() string {
	switch h {
	case HandleBody:
		return "body"
	case HandleResize:
		return "resize"
	case HandleRotate:
		return "rotate"
	case HandleRangeRail:
		return "range-rail"
	case HandleStartPoint:
		return "start-point"
	case HandleEndPoint:
		return "end-point"
	default:
		return "none"
	}
}

// PointerEvent is the single tagged event dispatched into the editor's state
// machine. Position is in display space; Target is the id of the shape under
// the pointer, empty for bare canvas.
type PointerEvent struct {
	Phase    PointerPhase
	Position geometry.Point
	Target   string
	Handle   Handle
}

// View is the coordinate context for one event: the current render transform
// and the crop origin of the photograph. It is passed explicitly with every
// pointer event rather than captured, and events against an invalid view are
// ignored entirely.
type View struct {
	Transform  geometry.RenderTransform
	CropOrigin geometry.Point
}

// Valid reports whether pointer handling is possible.
func (v View) Valid() bool {
	return v.Transform.Valid()
}

// ToImage converts a display point into uncropped image space.
func (v View) ToImage(p geometry.Point) geometry.Point {
	return v.Transform.ToImage(p, v.CropOrigin)
}

// ToDisplay converts an image point into display space.
func (v View) ToDisplay(p geometry.Point) geometry.Point {
	return v.Transform.ToDisplay(p, v.CropOrigin)
}

// NodeTransform is the transform a renderer node accumulated during an
// interactive resize/rotate, read back at transform-end. Scale factors are
// unitless; Center is the node's final center in display space.
type NodeTransform struct {
	ScaleX          float64
	ScaleY          float64
	RotationDegrees float64
	Center          geometry.Point
}

// TransformNode is the renderer-side handle of an editable shape. The
// underlying scene graph (canvas, GPU, DOM) stays behind this interface: the
// editor reads the accumulated transform, folds it into the geometry model,
// and resets the node so scale never compounds across repeated transforms.
type TransformNode interface {
	Accumulated() NodeTransform
	Reset()
}
