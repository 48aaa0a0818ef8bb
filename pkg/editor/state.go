package editor

import "fmt"

// State is the editor's interaction state. All transitions start and end at
// StateIdle:
//
//	Idle → Dragging      → Idle   (shape body move)
//	Idle → Transforming  → Idle   (resize/rotate via handle)
//	Idle → RangeDragging → Idle   (linear band half-width)
//	Idle → PointDragging → Idle   (linear endpoint move)
//	Idle → StrokeDrawing → Idle   (brush/eraser/AI-box capture)
type State int

const (
	StateIdle State = iota
	StateDragging
	StateTransforming
	StateRangeDragging
	StatePointDragging
	StateStrokeDrawing
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateTransforming:
		return "transforming"
	case StateRangeDragging:
		return "range-dragging"
	case StatePointDragging:
		return "point-dragging"
	case StateStrokeDrawing:
		return "stroke-drawing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Tool selects what a pointer-down on the canvas does.
type Tool int

const (
	// ToolSelect manipulates the active shape (drag, transform, rails).
	ToolSelect Tool = iota
	// ToolBrush captures freehand strokes into the active brush mask.
	ToolBrush
	// ToolEraser captures a stroke that removes intersecting brush lines.
	ToolEraser
	// ToolAIBox captures a stroke whose bounding box seeds segmentation.
	ToolAIBox
)

// String returns a human-readable representation of the tool.
func (t Tool) String() string {
	switch t {
	case ToolBrush:
		return "brush"
	case ToolEraser:
		return "eraser"
	case ToolAIBox:
		return "ai-box"
	default:
		return "select"
	}
}

func (t Tool) isStroke() bool {
	return t == ToolBrush || t == ToolEraser || t == ToolAIBox
}
