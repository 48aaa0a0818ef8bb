// Package animation provides the timing primitives behind the editor's
// crossfades: a steppable frame clock, tickers, easing curves, and the
// FadeController that drives layer opacity from 0 to 1.
package animation

import (
	"sync"
	"time"
)

// Clock supplies the current time. Tests inject a fake clock via SetClock to
// step fades deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

var clock Clock = systemClock{}

// SetClock replaces the package time source and returns the previous clock so
// callers can restore it during cleanup.
func SetClock(c Clock) Clock {
	prev := clock
	clock = c
	return prev
}

// Now returns the current time from the active clock.
func Now() time.Time { return clock.Now() }

var (
	tickerMu      sync.Mutex
	activeTickers = make(map[*Ticker]struct{})
)

// Ticker invokes a callback with the elapsed time on every frame step while
// active. It is the low-level primitive under [FadeController]; the UI loop
// drives all active tickers through [StepTickers].
type Ticker struct {
	callback func(elapsed time.Duration)
	active   bool
	start    time.Time
}

// NewTicker creates an inactive ticker with the given callback.
func NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{callback: callback}
}

// Start activates the ticker. Starting an active ticker is a no-op.
func (t *Ticker) Start() {
	if t.active {
		return
	}
	t.active = true
	t.start = Now()
	tickerMu.Lock()
	activeTickers[t] = struct{}{}
	tickerMu.Unlock()
}

// Stop deactivates the ticker.
func (t *Ticker) Stop() {
	if !t.active {
		return
	}
	t.active = false
	tickerMu.Lock()
	delete(activeTickers, t)
	tickerMu.Unlock()
}

// IsActive reports whether the ticker is running.
func (t *Ticker) IsActive() bool { return t.active }

// StepTickers advances every active ticker. Called once per frame from the
// host's frame loop (or directly from tests after moving the fake clock).
func StepTickers() {
	tickerMu.Lock()
	tickers := make([]*Ticker, 0, len(activeTickers))
	for ticker := range activeTickers {
		tickers = append(tickers, ticker)
	}
	tickerMu.Unlock()

	for _, ticker := range tickers {
		if ticker.active && ticker.callback != nil {
			ticker.callback(Now().Sub(ticker.start))
		}
	}
}

// HasActiveTickers reports whether any ticker is running.
func HasActiveTickers() bool {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	return len(activeTickers) > 0
}
