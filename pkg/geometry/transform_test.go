package geometry

import (
	"math"
	"testing"
)

func TestToDisplayToImageRoundTrip(t *testing.T) {
	transforms := []RenderTransform{
		{Scale: 1},
		{Scale: 0.5, OffsetX: 12, OffsetY: -7},
		{Scale: 2.25, OffsetX: 103.5, OffsetY: 44.25},
		{Scale: 0.083, OffsetX: -300, OffsetY: 600},
	}
	crops := []Point{
		{},
		{X: 120, Y: 48},
		{X: -16, Y: 2048},
	}
	points := []Point{
		{},
		{X: 500, Y: 500},
		{X: 0.25, Y: 8191.75},
		{X: -40, Y: 13},
	}

	for _, tr := range transforms {
		for _, crop := range crops {
			for _, p := range points {
				got := tr.ToImage(tr.ToDisplay(p, crop), crop)
				if !got.ApproxEqual(p) {
					t.Errorf("round trip %+v crop %+v: got %+v, want %+v", tr, crop, got, p)
				}
			}
		}
	}
}

func TestToDisplayAppliesCropBeforeScale(t *testing.T) {
	tr := RenderTransform{Scale: 0.5, OffsetX: 10, OffsetY: 20}
	crop := Point{X: 100, Y: 200}

	got := tr.ToDisplay(Point{X: 300, Y: 600}, crop)
	want := Point{X: (300-100)*0.5 + 10, Y: (600-200)*0.5 + 20}
	if !got.ApproxEqual(want) {
		t.Errorf("ToDisplay() = %+v, want %+v", got, want)
	}
}

func TestFitTransform(t *testing.T) {
	tests := []struct {
		name        string
		container   Size
		imageW      float64
		imageH      float64
		orientation int
		wantScale   float64
		wantOffsetX float64
		wantOffsetY float64
		wantOK      bool
	}{
		{
			name:      "landscape image in wide container",
			container: Size{Width: 800, Height: 600},
			imageW:    1600, imageH: 1200,
			wantScale: 0.5, wantOK: true,
		},
		{
			name:      "letterboxed vertically",
			container: Size{Width: 800, Height: 800},
			imageW:    1600, imageH: 1200,
			wantScale: 0.5, wantOffsetY: 100, wantOK: true,
		},
		{
			name:      "orientation step swaps dimensions",
			container: Size{Width: 600, Height: 800},
			imageW:    1600, imageH: 1200,
			orientation: 1,
			wantScale:   0.5, wantOffsetY: 0, wantOK: true,
		},
		{
			name:      "unmeasured container disables mapping",
			container: Size{},
			imageW:    1600, imageH: 1200,
			wantScale: 1, wantOK: false,
		},
		{
			name:      "zero image dimension disables mapping",
			container: Size{Width: 800, Height: 600},
			imageW:    0, imageH: 1200,
			wantScale: 1, wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, ok := FitTransform(tt.container, tt.imageW, tt.imageH, tt.orientation)
			if ok != tt.wantOK {
				t.Fatalf("FitTransform() ok = %v, want %v", ok, tt.wantOK)
			}
			if math.Abs(tr.Scale-tt.wantScale) > epsilon {
				t.Errorf("Scale = %v, want %v", tr.Scale, tt.wantScale)
			}
			if math.Abs(tr.OffsetX-tt.wantOffsetX) > epsilon {
				t.Errorf("OffsetX = %v, want %v", tr.OffsetX, tt.wantOffsetX)
			}
			if math.Abs(tr.OffsetY-tt.wantOffsetY) > epsilon {
				t.Errorf("OffsetY = %v, want %v", tr.OffsetY, tt.wantOffsetY)
			}
		})
	}
}

func TestLengthConversionsInverse(t *testing.T) {
	tr := RenderTransform{Scale: 0.4}
	if got := tr.ToDisplayLength(tr.ToImageLength(37)); math.Abs(got-37) > epsilon {
		t.Errorf("length round trip = %v, want 37", got)
	}
}
