package backend

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-darkroom/darkroom/pkg/geometry"
	"github.com/go-darkroom/darkroom/pkg/mask"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Close()

	var runs atomic.Int32
	var lastSeq atomic.Uint64
	for i := 0; i < 25; i++ {
		d.Do(func(ctx context.Context, seq uint64) {
			runs.Add(1)
			lastSeq.Store(seq)
		})
	}

	time.Sleep(60 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Errorf("runs = %d, want 1 for a burst within the interval", got)
	}
	if got := lastSeq.Load(); got != 25 {
		t.Errorf("executed seq = %d, want the newest (25)", got)
	}
}

func TestDebouncerStillDetectsStale(t *testing.T) {
	d := NewDebouncer(time.Millisecond)
	defer d.Close()

	first := d.Do(func(ctx context.Context, seq uint64) {})
	second := d.Do(func(ctx context.Context, seq uint64) {})

	if d.Still(first) {
		t.Errorf("superseded sequence reported as current")
	}
	if !d.Still(second) {
		t.Errorf("newest sequence reported as stale")
	}
}

func TestDebouncerCloseCancelsContext(t *testing.T) {
	d := NewDebouncer(time.Millisecond)

	done := make(chan error, 1)
	started := make(chan struct{})
	d.Do(func(ctx context.Context, seq uint64) {
		close(started)
		<-ctx.Done()
		done <- ctx.Err()
	})

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatalf("debounced request never ran")
	}
	d.Close()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("ctx err = %v, want canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("in-flight work never observed cancellation")
	}

	d.Do(func(ctx context.Context, seq uint64) { t.Error("Do after Close ran") })
	d.Flush()
	time.Sleep(10 * time.Millisecond)
}

func TestDebouncerFlushRunsPendingNow(t *testing.T) {
	d := NewDebouncer(time.Hour)
	defer d.Close()

	ran := make(chan struct{})
	d.Do(func(ctx context.Context, seq uint64) { close(ran) })
	d.Flush()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatalf("flush did not run the pending request")
	}
}

// failingRenderer errors on every call.
type failingRenderer struct{}

func (failingRenderer) RenderPreview(ctx context.Context, req PreviewRequest) (image.Image, error) {
	return nil, errors.New("backend unavailable")
}

func (failingRenderer) RenderMaskOverlay(ctx context.Context, def *mask.Container, w, h int, scale float64, crop geometry.Point) (image.Image, error) {
	return nil, errors.New("backend unavailable")
}

func TestClientOverlayFailureResolvesToNone(t *testing.T) {
	c := NewClient(failingRenderer{}, &BoxSegmenter{}, time.Millisecond, nil)
	defer c.Close()

	var mu sync.Mutex
	applied := false
	var got image.Image
	container := mask.NewContainer("m")
	c.RequestOverlay(container, 10, 10, 1, geometry.Point{}, func(img image.Image) {
		mu.Lock()
		applied = true
		got = img
		mu.Unlock()
	})
	c.Flush()
	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if !applied || got != nil {
		t.Errorf("failed overlay should apply nil: applied=%v got=%v", applied, got)
	}
}

func TestClientPreviewFailureAppliesNothing(t *testing.T) {
	c := NewClient(failingRenderer{}, &BoxSegmenter{}, time.Millisecond, nil)
	defer c.Close()

	var applied atomic.Bool
	c.RequestPreview(PreviewRequest{}, func(img image.Image) { applied.Store(true) })
	c.Flush()
	time.Sleep(20 * time.Millisecond)

	if applied.Load() {
		t.Errorf("failed preview must not reach the presenter")
	}
}

func TestClientSegmentationDelivers(t *testing.T) {
	c := NewClient(failingRenderer{}, &BoxSegmenter{Stage: "model downloading"}, time.Millisecond, nil)
	defer c.Close()

	var mu sync.Mutex
	var stages []string
	var result image.Image
	done := make(chan struct{})
	c.RequestSegmentation(geometry.RectFromLTWH(0, 0, 8, 4), SegmentSubject,
		func(p SegmentProgress) {
			mu.Lock()
			stages = append(stages, p.Stage)
			mu.Unlock()
		},
		func(img image.Image) {
			mu.Lock()
			result = img
			mu.Unlock()
			close(done)
		})
	c.Flush()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("segmentation never resolved")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(stages) != 1 || stages[0] != "model downloading" {
		t.Errorf("stages = %v", stages)
	}
	if result == nil {
		t.Fatalf("no mask bitmap delivered")
	}
	b := result.Bounds()
	if b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("mask bounds = %v, want 8x4", b)
	}
}
