package editor

import (
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/go-darkroom/darkroom/pkg/animation"
	"github.com/go-darkroom/darkroom/pkg/geometry"
	"github.com/go-darkroom/darkroom/pkg/mask"
)

// DefaultIndicatorDelay is how long a segmentation call must stay pending
// before the analyzing indicator becomes visible. Short calls never flash it.
const DefaultIndicatorDelay = 200 * time.Millisecond

// SegmentFunc dispatches one segmentation request for an AI sub-mask. The
// host wires this to its backend client; done receives the mask bitmap, or
// nil when the call failed or produced nothing.
type SegmentFunc func(seed geometry.Rect, kind mask.Kind, done func(image.Image))

// Editor is the pointer-driven state machine over one mask container. It owns
// selection, the interaction state, and transient gesture data; all geometry
// it commits goes through the container's validated snapshot replacement.
//
// The editor is single-goroutine: the host delivers pointer events and
// segmentation results on the same loop.
type Editor struct {
	log       *zap.Logger
	container *mask.Container
	history   History

	activeID string
	tool     Tool
	state    State

	// brushSize and brushFeather are the live tool settings. Size is a
	// display-space diameter; it converts to image space at stroke commit so
	// a stroke painted at any zoom covers what the user saw.
	brushSize    float64
	brushFeather float64

	stroke     []geometry.Point
	dragStart  geometry.Point
	dragOrig   mask.SubMask
	dragHandle Handle

	segment        SegmentFunc
	segPending     bool
	segStart       time.Time
	indicatorDelay time.Duration

	onChange func()
}

// NewEditor creates an idle editor over the container with the select tool
// active. A nil logger falls back to a no-op logger.
func NewEditor(container *mask.Container, log *zap.Logger) *Editor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Editor{
		log:            log,
		container:      container,
		brushSize:      48,
		indicatorDelay: DefaultIndicatorDelay,
	}
}

// SetHistory attaches the externally supplied undo service.
func (e *Editor) SetHistory(h History) { e.history = h }

// SetOnChange registers the callback invoked after every committed mutation.
// The host uses it to schedule overlay and preview refreshes.
func (e *Editor) SetOnChange(fn func()) { e.onChange = fn }

// SetSegment registers the segmentation dispatcher used by the AI box tool.
func (e *Editor) SetSegment(fn SegmentFunc) { e.segment = fn }

// SetIndicatorDelay overrides the analyzing-indicator grace period.
func (e *Editor) SetIndicatorDelay(d time.Duration) { e.indicatorDelay = d }

// SetTool switches the active tool. Switching mid-gesture abandons the
// gesture without committing.
func (e *Editor) SetTool(t Tool) {
	if e.state != StateIdle {
		e.log.Debug("tool switch abandons gesture", zap.Stringer("state", e.state))
		e.stroke = nil
		e.state = StateIdle
	}
	e.tool = t
}

// Tool returns the active tool.
func (e *Editor) Tool() Tool { return e.tool }

// State returns the current interaction state.
func (e *Editor) State() State { return e.state }

// SetBrushSize sets the brush diameter in display pixels.
func (e *Editor) SetBrushSize(size float64) {
	if size > 0 {
		e.brushSize = size
	}
}

// SetBrushFeather sets the brush edge softness in [0, 1].
func (e *Editor) SetBrushFeather(feather float64) {
	if feather < 0 {
		feather = 0
	}
	if feather > 1 {
		feather = 1
	}
	e.brushFeather = feather
}

// Select makes the sub-mask with the given id the single active shape and
// reports whether it exists. Selecting an unknown id changes nothing.
func (e *Editor) Select(id string) bool {
	if _, ok := e.container.Find(id); !ok {
		e.log.Debug("select ignored for unknown sub-mask", zap.String("id", id))
		return false
	}
	if e.activeID != id {
		e.activeID = id
		e.notify()
	}
	return true
}

// DeselectAll clears the active shape.
func (e *Editor) DeselectAll() {
	if e.activeID == "" {
		return
	}
	e.activeID = ""
	e.notify()
}

// ActiveID returns the id of the active shape, empty when nothing is active.
func (e *Editor) ActiveID() string { return e.activeID }

// HandlePointer feeds one display-space pointer event through the state
// machine. Events against an invalid view are ignored entirely; no partial
// gesture can start before the first layout completes.
func (e *Editor) HandlePointer(ev PointerEvent, view View) {
	if !view.Valid() {
		return
	}

	switch e.state {
	case StateIdle:
		if ev.Phase == PhaseDown {
			e.pointerDown(ev, view)
		}

	case StateDragging:
		e.pointerDrag(ev, view, func(p geometry.Point) mask.SubMask {
			delta := p.Sub(e.dragStart)
			return strategyFor(e.dragOrig.Kind).onDrag(e.dragOrig, delta)
		})

	case StateRangeDragging:
		e.pointerDrag(ev, view, func(p geometry.Point) mask.SubMask {
			return strategyFor(e.dragOrig.Kind).onRangeDrag(e.dragOrig, p)
		})

	case StatePointDragging:
		e.pointerDrag(ev, view, func(p geometry.Point) mask.SubMask {
			return strategyFor(e.dragOrig.Kind).onPointDrag(e.dragOrig, e.dragHandle, p)
		})

	case StateTransforming:
		// The renderer node tracks the pointer visually; geometry folds in
		// once at EndTransform. Up and leave only arm the fold.
		if ev.Phase == PhaseUp || ev.Phase == PhaseLeave {
			e.state = StateIdle
		}

	case StateStrokeDrawing:
		switch ev.Phase {
		case PhaseMove:
			e.stroke = append(e.stroke, ev.Position)
		case PhaseUp, PhaseLeave:
			e.stroke = append(e.stroke, ev.Position)
			e.commitStroke(view)
			e.stroke = nil
			e.state = StateIdle
		}
	}
}

// pointerDown dispatches the Idle -> gesture transitions.
func (e *Editor) pointerDown(ev PointerEvent, view View) {
	if e.tool.isStroke() {
		if !e.strokeTargetReady() {
			e.log.Debug("stroke ignored without a compatible active mask",
				zap.Stringer("tool", e.tool))
			return
		}
		e.stroke = []geometry.Point{ev.Position}
		e.state = StateStrokeDrawing
		return
	}

	// Select tool.
	if ev.Target == "" {
		e.DeselectAll()
		return
	}
	if ev.Target != e.activeID {
		// First click only selects; manipulating needs a second press.
		e.Select(ev.Target)
		return
	}

	orig, ok := e.container.Find(e.activeID)
	if !ok {
		return
	}
	e.dragOrig = orig
	e.dragStart = view.ToImage(ev.Position)
	e.dragHandle = ev.Handle

	switch ev.Handle {
	case HandleResize, HandleRotate:
		e.state = StateTransforming
	case HandleRangeRail:
		e.state = StateRangeDragging
	case HandleStartPoint, HandleEndPoint:
		e.state = StatePointDragging
	default:
		e.state = StateDragging
	}
}

// pointerDrag applies the gesture's mutation against the snapshot captured at
// pointer-down and returns to idle on up or leave.
func (e *Editor) pointerDrag(ev PointerEvent, view View, mutate func(geometry.Point) mask.SubMask) {
	switch ev.Phase {
	case PhaseMove:
		e.apply(mutate(view.ToImage(ev.Position)))
	case PhaseUp, PhaseLeave:
		e.apply(mutate(view.ToImage(ev.Position)))
		e.state = StateIdle
	}
}

// strokeTargetReady reports whether the active mask can receive the current
// stroke tool.
func (e *Editor) strokeTargetReady() bool {
	m, ok := e.container.Find(e.activeID)
	if !ok {
		return false
	}
	switch e.tool {
	case ToolBrush, ToolEraser:
		return m.Kind == mask.KindBrush
	case ToolAIBox:
		return m.Kind.IsAI()
	default:
		return false
	}
}

// commitStroke converts the captured display-space stroke into image space
// and hands it to the active mask: brush appends a line, eraser drops whole
// intersecting lines, and the AI box seeds a segmentation call.
func (e *Editor) commitStroke(view View) {
	active, ok := e.container.Find(e.activeID)
	if !ok {
		return
	}

	points := make([]geometry.Point, len(e.stroke))
	for i, p := range e.stroke {
		points[i] = view.ToImage(p)
	}

	switch e.tool {
	case ToolBrush:
		e.apply(active.WithBrushLine(mask.Line{
			Tool:      mask.ToolBrush,
			BrushSize: view.Transform.ToImageLength(e.brushSize),
			Feather:   e.brushFeather,
			Points:    points,
		}))

	case ToolEraser:
		e.apply(active.WithLinesErased(mask.Line{
			Tool:      mask.ToolEraser,
			BrushSize: view.Transform.ToImageLength(e.brushSize),
			Points:    points,
		}))

	case ToolAIBox:
		seed := geometry.RectFromPoints(points[0], points[0])
		for _, p := range points[1:] {
			seed = seed.ExpandToInclude(p)
		}
		e.requestSegmentation(active, seed)
	}
}

// requestSegmentation dispatches the AI box seed and arms the pending
// indicator. The result is matched back by id so a mask deleted mid-call is
// silently dropped.
func (e *Editor) requestSegmentation(active mask.SubMask, seed geometry.Rect) {
	if e.segment == nil {
		e.log.Warn("no segmentation backend wired", zap.String("id", active.ID))
		return
	}
	e.segPending = true
	e.segStart = animation.Now()
	id := active.ID
	e.segment(seed, active.Kind, func(bitmap image.Image) {
		e.applySegmentation(id, bitmap)
	})
}

// applySegmentation installs a finished segmentation bitmap. The target must
// still exist and still be an AI mask; anything else clears the pending flag
// and drops the bitmap.
func (e *Editor) applySegmentation(id string, bitmap image.Image) {
	e.segPending = false
	if bitmap == nil {
		e.log.Warn("segmentation returned no bitmap", zap.String("id", id))
		return
	}
	m, ok := e.container.Find(id)
	if !ok || !m.Kind.IsAI() || m.AI == nil {
		e.log.Debug("segmentation target gone", zap.String("id", id))
		return
	}
	params := *m.AI
	params.BitmapRef = bitmap
	e.apply(m.WithAI(params))
}

// ShowAnalyzing reports whether the analyzing indicator should be visible: a
// segmentation call is pending and has been for longer than the grace period.
func (e *Editor) ShowAnalyzing() bool {
	return e.segPending && animation.Now().Sub(e.segStart) >= e.indicatorDelay
}

// EndTransform folds the renderer node's accumulated scale and rotation into
// the active shape's image-space parameters, then resets the node so repeated
// transforms never compound. The host calls this when the transform gesture's
// pointer is released.
func (e *Editor) EndTransform(node TransformNode, view View) {
	if !view.Valid() || node == nil {
		return
	}
	active, ok := e.container.Find(e.activeID)
	if !ok {
		return
	}
	if e.state == StateTransforming {
		e.state = StateIdle
	}
	folded := strategyFor(active.Kind).onTransform(active, node.Accumulated(), view)
	e.apply(folded)
	node.Reset()
}

// Undo forwards an undo request to the external history service. After the
// service rewrites the container, selection is revalidated against the new
// sub-mask list.
func (e *Editor) Undo() {
	if e.history == nil || !e.history.CanUndo() {
		return
	}
	e.history.Undo()
	e.revalidateSelection()
}

// Redo forwards a redo request to the external history service.
func (e *Editor) Redo() {
	if e.history == nil || !e.history.CanRedo() {
		return
	}
	e.history.Redo()
	e.revalidateSelection()
}

// CanUndo reports whether the history service has an undo step.
func (e *Editor) CanUndo() bool { return e.history != nil && e.history.CanUndo() }

// CanRedo reports whether the history service has a redo step.
func (e *Editor) CanRedo() bool { return e.history != nil && e.history.CanRedo() }

// revalidateSelection drops the active id if history rewrote it away.
func (e *Editor) revalidateSelection() {
	if e.activeID == "" {
		return
	}
	if _, ok := e.container.Find(e.activeID); !ok {
		e.activeID = ""
	}
	e.notify()
}

// apply commits a validated snapshot through the container. Snapshots whose
// id no longer exists are a silent no-op.
func (e *Editor) apply(m mask.SubMask) {
	if e.container.Replace(m) {
		e.notify()
	}
}

func (e *Editor) notify() {
	if e.onChange != nil {
		e.onChange()
	}
}
