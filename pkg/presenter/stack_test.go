package presenter

import (
	"image"
	"testing"
	"time"

	"github.com/go-darkroom/darkroom/pkg/animation"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
	animation.StepTickers()
}

func withFakeClock(t *testing.T) *fakeClock {
	t.Helper()
	fc := &fakeClock{now: time.Unix(1000, 0)}
	prev := animation.SetClock(fc)
	t.Cleanup(func() { animation.SetClock(prev) })
	return fc
}

func bitmap() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 2, 2))
}

func TestSeedIsImmediatelyOpaque(t *testing.T) {
	withFakeClock(t)
	s := NewStack(100*time.Millisecond, nil)
	defer s.Dispose()

	thumb := bitmap()
	s.Reset(thumb, bitmap())

	layers := s.Layers()
	if len(layers) != 1 || layers[0].Image != thumb || layers[0].Opacity != 1 {
		t.Fatalf("seeded layers = %+v", layers)
	}
}

func TestAdvanceConvergesToSingleLayer(t *testing.T) {
	fc := withFakeClock(t)
	s := NewStack(100*time.Millisecond, nil)
	defer s.Dispose()
	s.Reset(bitmap(), nil)

	preview := bitmap()
	s.Advance(preview)

	layers := s.Layers()
	if len(layers) != 2 {
		t.Fatalf("layer count during fade = %d, want 2", len(layers))
	}
	if layers[1].Opacity != 0 {
		t.Errorf("new layer opacity = %v, want 0", layers[1].Opacity)
	}

	fc.advance(50 * time.Millisecond)
	layers = s.Layers()
	if !(layers[1].Opacity > 0 && layers[1].Opacity < 1) {
		t.Errorf("mid-fade opacity = %v, want in (0,1)", layers[1].Opacity)
	}
	if layers[0].Opacity != 1 {
		t.Errorf("older layer opacity = %v, want 1", layers[0].Opacity)
	}

	fc.advance(50 * time.Millisecond)
	layers = s.Layers()
	if len(layers) != 1 {
		t.Fatalf("layer count after fade = %d, want 1", len(layers))
	}
	if layers[0].Image != preview || layers[0].Opacity != 1 {
		t.Errorf("converged layer = %+v", layers[0])
	}
}

func TestNilBitmapKeepsLastGoodFrame(t *testing.T) {
	fc := withFakeClock(t)
	s := NewStack(50*time.Millisecond, nil)
	defer s.Dispose()

	seed := bitmap()
	s.Reset(seed, nil)
	s.Advance(nil)
	fc.advance(50 * time.Millisecond)

	layers := s.Layers()
	if len(layers) != 1 || layers[0].Image != seed {
		t.Fatalf("nil bitmap advanced the stack: %+v", layers)
	}
}

func TestDuplicateBitmapIgnored(t *testing.T) {
	fc := withFakeClock(t)
	s := NewStack(50*time.Millisecond, nil)
	defer s.Dispose()
	s.Reset(bitmap(), nil)

	preview := bitmap()
	s.Advance(preview)
	fc.advance(50 * time.Millisecond)
	s.Advance(preview)

	if len(s.Layers()) != 1 {
		t.Errorf("reference-identical bitmap restarted a fade")
	}
}

func TestShowOriginalRoundTrip(t *testing.T) {
	fc := withFakeClock(t)
	s := NewStack(50*time.Millisecond, nil)
	defer s.Dispose()

	original := bitmap()
	s.Reset(bitmap(), original)

	edited := bitmap()
	s.Advance(edited)
	fc.advance(50 * time.Millisecond)

	s.ShowOriginal(true)
	fc.advance(50 * time.Millisecond)
	layers := s.Layers()
	if len(layers) != 1 || layers[0].Image != original {
		t.Fatalf("original not shown: %+v", layers)
	}

	s.ShowOriginal(false)
	fc.advance(50 * time.Millisecond)
	layers = s.Layers()
	if len(layers) != 1 || layers[0].Image != edited {
		t.Fatalf("edited bitmap not restored: %+v", layers)
	}
}

func TestAdvanceWhileShowingOriginalDefers(t *testing.T) {
	fc := withFakeClock(t)
	s := NewStack(50*time.Millisecond, nil)
	defer s.Dispose()

	original := bitmap()
	s.Reset(bitmap(), original)
	s.ShowOriginal(true)
	fc.advance(50 * time.Millisecond)

	edited := bitmap()
	s.Advance(edited)
	if got := s.Layers()[len(s.Layers())-1].Image; got != original {
		t.Fatalf("preview displaced the original layer")
	}

	s.ShowOriginal(false)
	fc.advance(50 * time.Millisecond)
	if got := s.Layers()[0].Image; got != edited {
		t.Fatalf("deferred preview not shown after toggle back")
	}
}

func TestResetClearsIdentity(t *testing.T) {
	fc := withFakeClock(t)
	s := NewStack(50*time.Millisecond, nil)
	defer s.Dispose()

	s.Reset(bitmap(), nil)
	s.Advance(bitmap())
	fc.advance(20 * time.Millisecond)

	next := bitmap()
	s.Reset(next, nil)
	layers := s.Layers()
	if len(layers) != 1 || layers[0].Image != next || layers[0].Opacity != 1 {
		t.Fatalf("reset did not reseed: %+v", layers)
	}
}
