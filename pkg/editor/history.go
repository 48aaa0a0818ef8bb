package editor

// History is the externally supplied undo service. The editor never owns the
// undo stack; it only surfaces availability to the UI and forwards the user's
// undo/redo requests. The service observes committed mutations through the
// same change notifications the host subscribes to.
type History interface {
	CanUndo() bool
	CanRedo() bool
	Undo()
	Redo()
}
