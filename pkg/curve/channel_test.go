package curve

import (
	"math"
	"math/rand"
	"sort"
	"testing"
)

func checkInvariants(t *testing.T, c *Channel) {
	t.Helper()
	if len(c.Points) < 2 {
		t.Fatalf("channel has %d points, want >= 2", len(c.Points))
	}
	if c.Points[0].X != 0 {
		t.Errorf("first point x = %v, want 0", c.Points[0].X)
	}
	if c.Points[len(c.Points)-1].X != 255 {
		t.Errorf("last point x = %v, want 255", c.Points[len(c.Points)-1].X)
	}
	if !sort.SliceIsSorted(c.Points, func(i, j int) bool {
		return c.Points[i].X < c.Points[j].X
	}) {
		t.Errorf("points not sorted by x: %v", c.Points)
	}
}

func TestInsertPointKeepsOrder(t *testing.T) {
	c := NewChannel()
	idx := c.InsertPoint(128, 200)
	if idx != 1 {
		t.Errorf("InsertPoint index = %d, want 1", idx)
	}
	want := []ControlPoint{{0, 0}, {128, 200}, {255, 255}}
	if len(c.Points) != len(want) {
		t.Fatalf("got %d points, want %d", len(c.Points), len(want))
	}
	for i := range want {
		if c.Points[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, c.Points[i], want[i])
		}
	}
	checkInvariants(t, &c)
}

func TestMovePointPinsEndpoints(t *testing.T) {
	c := NewChannel()
	c.MovePoint(0, 97, 30)
	if c.Points[0].X != 0 || c.Points[0].Y != 30 {
		t.Errorf("endpoint 0 = %v, want {0 30}", c.Points[0])
	}
	c.MovePoint(1, 12, 240)
	if c.Points[1].X != 255 || c.Points[1].Y != 240 {
		t.Errorf("endpoint 1 = %v, want {255 240}", c.Points[1])
	}
	checkInvariants(t, &c)
}

func TestMovePointClampsToNeighbor(t *testing.T) {
	c := NewChannel()
	c.InsertPoint(100, 100)
	c.InsertPoint(150, 150)

	// Dragging the second interior point past the first clamps one gap above.
	c.MovePoint(2, 50, 150)
	if got := c.Points[2].X; got != 101 {
		t.Errorf("clamped x = %v, want 101", got)
	}
	// Dragging past the right endpoint clamps one gap below it.
	c.MovePoint(2, 400, 150)
	if got := c.Points[2].X; got != 254 {
		t.Errorf("clamped x = %v, want 254", got)
	}
	checkInvariants(t, &c)
}

func TestDeletePointRejectsEndpoints(t *testing.T) {
	c := NewChannel()
	c.InsertPoint(128, 128)

	c.DeletePoint(0)
	c.DeletePoint(2)
	if len(c.Points) != 3 {
		t.Fatalf("endpoint delete changed point count: %d", len(c.Points))
	}
	c.DeletePoint(1)
	if len(c.Points) != 2 {
		t.Fatalf("interior delete failed: %d points", len(c.Points))
	}
	checkInvariants(t, &c)
}

func TestResetIdempotent(t *testing.T) {
	c := NewChannel()
	c.InsertPoint(64, 20)
	c.InsertPoint(192, 230)

	c.Reset()
	once := append([]ControlPoint(nil), c.Points...)
	c.Reset()

	if len(c.Points) != 2 || len(once) != 2 {
		t.Fatalf("reset did not restore two points")
	}
	for i := range once {
		if c.Points[i] != once[i] {
			t.Errorf("double reset differs at %d: %v vs %v", i, c.Points[i], once[i])
		}
	}
	if !c.IsIdentity() {
		t.Errorf("reset channel is not identity: %v", c.Points)
	}
}

func TestInvariantsUnderRandomMutations(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := NewChannel()
	for i := 0; i < 500; i++ {
		switch rng.Intn(3) {
		case 0:
			c.InsertPoint(rng.Float64()*300-20, rng.Float64()*300-20)
		case 1:
			c.MovePoint(rng.Intn(len(c.Points)+2)-1, rng.Float64()*300-20, rng.Float64()*300-20)
		case 2:
			c.DeletePoint(rng.Intn(len(c.Points)+2) - 1)
		}
		checkInvariants(t, &c)
	}
}

func TestEvaluateAtControlPointExact(t *testing.T) {
	c := NewChannel()
	c.InsertPoint(128, 200)
	if got := EvaluateAt(c.Points, DefaultTension, 128); got != 200 {
		t.Errorf("EvaluateAt(128) = %v, want exactly 200", got)
	}
	if got := EvaluateAt(c.Points, DefaultTension, 0); got != 0 {
		t.Errorf("EvaluateAt(0) = %v, want 0", got)
	}
	if got := EvaluateAt(c.Points, DefaultTension, 255); got != 255 {
		t.Errorf("EvaluateAt(255) = %v, want 255", got)
	}
}

func TestPathClampedBoundaries(t *testing.T) {
	points := []ControlPoint{{0, 0}, {255, 255}}
	segments := Path(points, DefaultTension)
	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	// With duplicated boundary neighbors the two-point path is a straight line.
	for _, tv := range []float64{0, 0.25, 0.5, 0.75, 1} {
		p := segments[0].Eval(tv)
		if math.Abs(p.Y-p.X) > 1e-9 {
			t.Errorf("identity path at t=%v: (%v, %v)", tv, p.X, p.Y)
		}
	}
}

func TestLUTIdentity(t *testing.T) {
	c := NewChannel()
	lut := c.LUT()
	for i := range lut {
		if int(lut[i]) != i {
			t.Errorf("identity LUT[%d] = %d", i, lut[i])
		}
	}
}

func TestLUTMonotonicForSimpleLift(t *testing.T) {
	c := NewChannel()
	c.InsertPoint(128, 180)
	lut := c.LUT()
	if lut[128] != 180 {
		t.Errorf("LUT[128] = %d, want 180", lut[128])
	}
	if lut[0] != 0 || lut[255] != 255 {
		t.Errorf("LUT endpoints = %d, %d", lut[0], lut[255])
	}
}

func TestHistogramSilhouette(t *testing.T) {
	var bins [256]uint32
	bins[10] = 1
	bins[100] = 100
	bins[200] = 10000

	h := HistogramSilhouette(bins, 120)
	if math.Abs(h[200]-120) > 1e-9 {
		t.Errorf("tallest bucket height = %v, want 120", h[200])
	}
	if !(h[10] > 0 && h[10] < h[100] && h[100] < h[200]) {
		t.Errorf("log scaling not monotonic: %v %v %v", h[10], h[100], h[200])
	}
	if h[0] != 0 {
		t.Errorf("empty bucket height = %v, want 0", h[0])
	}

	again := HistogramSilhouette(bins, 120)
	if h != again {
		t.Errorf("scaling is not stable across redraws")
	}

	var empty [256]uint32
	if HistogramSilhouette(empty, 120) != [256]float64{} {
		t.Errorf("empty histogram should be all zeros")
	}
}
