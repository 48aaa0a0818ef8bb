package animation

import (
	"fmt"
	"time"
)

// FadeStatus is the state of a fade.
type FadeStatus int

const (
	// FadeDismissed means the fade is stopped at 0.
	FadeDismissed FadeStatus = iota
	// FadeForward means the value is rising toward 1.
	FadeForward
	// FadeReverse means the value is falling toward 0.
	FadeReverse
	// FadeCompleted means the fade is stopped at 1.
	FadeCompleted
)

// String returns a human-readable representation of the fade status.
func (s FadeStatus) String() string {
	switch s {
	case FadeDismissed:
		return "dismissed"
	case FadeForward:
		return "forward"
	case FadeReverse:
		return "reverse"
	case FadeCompleted:
		return "completed"
	default:
		return fmt.Sprintf("FadeStatus(%d)", int(s))
	}
}

// FadeController drives an opacity value from 0 to 1 (or back) over a fixed
// duration, with optional easing. Listeners fire on every value change and on
// status transitions; the presenter uses the completion transition to collapse
// its layer stack.
//
// Call Dispose when done to stop the underlying ticker.
type FadeController struct {
	// Value is the current fade value in [0, 1].
	Value float64

	// Duration is the length of a full fade.
	Duration time.Duration

	// Curve transforms linear progress into eased motion (optional).
	Curve func(float64) float64

	status          FadeStatus
	ticker          *Ticker
	target          float64
	startValue      float64
	listeners       map[int]func()
	statusListeners map[int]func(FadeStatus)
	nextListenerID  int
}

// NewFadeController creates a fade controller at value 0.
func NewFadeController(duration time.Duration) *FadeController {
	return &FadeController{
		Duration:        duration,
		Curve:           LinearCurve,
		status:          FadeDismissed,
		listeners:       make(map[int]func()),
		statusListeners: make(map[int]func(FadeStatus)),
	}
}

// Forward fades from the current value to 1.
func (c *FadeController) Forward() {
	c.animateTo(1, FadeForward)
}

// Reverse fades from the current value to 0.
func (c *FadeController) Reverse() {
	c.animateTo(0, FadeReverse)
}

// Restart snaps the value back to 0 and fades to 1. Used when a new layer
// begins its fade-in while a previous fade is still running.
func (c *FadeController) Restart() {
	c.Stop()
	c.Value = 0
	c.animateTo(1, FadeForward)
}

func (c *FadeController) animateTo(target float64, direction FadeStatus) {
	if c.ticker != nil {
		c.ticker.Stop()
	}
	c.target = target
	c.startValue = c.Value
	c.setStatus(direction)

	c.ticker = NewTicker(func(elapsed time.Duration) {
		c.tick(elapsed)
	})
	c.ticker.Start()
}

func (c *FadeController) tick(elapsed time.Duration) {
	if c.Duration <= 0 {
		c.Value = c.target
		c.notifyListeners()
		c.finish()
		return
	}
	progress := float64(elapsed) / float64(c.Duration)
	if progress >= 1 {
		progress = 1
	}
	eased := progress
	if c.Curve != nil {
		eased = c.Curve(progress)
	}
	c.Value = c.startValue + (c.target-c.startValue)*eased
	c.notifyListeners()

	if progress >= 1 {
		c.finish()
	}
}

func (c *FadeController) finish() {
	c.Stop()
	if c.Value <= 0 {
		c.setStatus(FadeDismissed)
	} else if c.Value >= 1 {
		c.setStatus(FadeCompleted)
	}
}

// Stop halts the fade at its current value.
func (c *FadeController) Stop() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

// Status returns the current fade status.
func (c *FadeController) Status() FadeStatus { return c.status }

// IsAnimating reports whether the fade is running.
func (c *FadeController) IsAnimating() bool {
	return c.status == FadeForward || c.status == FadeReverse
}

// AddListener registers a callback fired whenever the value changes.
// It returns an unsubscribe function.
func (c *FadeController) AddListener(fn func()) func() {
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = fn
	return func() { delete(c.listeners, id) }
}

// AddStatusListener registers a callback fired on status transitions.
// It returns an unsubscribe function.
func (c *FadeController) AddStatusListener(fn func(FadeStatus)) func() {
	id := c.nextListenerID
	c.nextListenerID++
	c.statusListeners[id] = fn
	return func() { delete(c.statusListeners, id) }
}

func (c *FadeController) setStatus(status FadeStatus) {
	if c.status == status {
		return
	}
	c.status = status
	for _, listener := range c.statusListeners {
		listener(status)
	}
}

func (c *FadeController) notifyListeners() {
	for _, listener := range c.listeners {
		listener()
	}
}

// Dispose stops the fade and releases listeners.
func (c *FadeController) Dispose() {
	c.Stop()
	c.listeners = nil
	c.statusListeners = nil
}
