package backend

import (
	"context"
	"sync"
	"time"
)

// Debouncer coalesces rapid request bursts, such as a continuous slider or
// mask drag, into at most one backend call per interval, running only the
// most recent
// request.
//
// Every scheduled request is stamped with a monotonic sequence number. A
// response must be checked with Still before being committed to state; a
// request superseded while in flight fails that check and is discarded.
// Close cancels the shared context and drops any pending request, so a
// dismounted editor never applies late-arriving bitmaps.
type Debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	seq     uint64
	pending func(ctx context.Context, seq uint64)
	timer   *time.Timer
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewDebouncer creates a debouncer with the given coalescing interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	ctx, cancel := context.WithCancel(context.Background())
	return &Debouncer{
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Do schedules fn as the latest request and returns its sequence number.
// If an earlier request is still waiting for the interval to elapse it is
// replaced; only the newest request runs.
func (d *Debouncer) Do(fn func(ctx context.Context, seq uint64)) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return d.seq
	}
	d.seq++
	seq := d.seq
	d.pending = fn
	if d.timer == nil {
		d.timer = time.AfterFunc(d.interval, d.fire)
	}
	return seq
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	seq := d.seq
	d.pending = nil
	d.timer = nil
	closed := d.closed
	d.mu.Unlock()

	if closed || fn == nil {
		return
	}
	fn(d.ctx, seq)
}

// Flush runs any pending request immediately instead of waiting out the
// interval.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.fire()
}

// Still reports whether seq is the most recent request. Responses for stale
// sequences must be discarded rather than applied.
func (d *Debouncer) Still(seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.closed && seq == d.seq
}

// Close cancels in-flight work and drops any pending request. Subsequent Do
// calls are ignored.
func (d *Debouncer) Close() {
	d.mu.Lock()
	d.closed = true
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.cancel()
}
