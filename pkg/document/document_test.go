package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-darkroom/darkroom/pkg/curve"
	derrors "github.com/go-darkroom/darkroom/pkg/errors"
	"github.com/go-darkroom/darkroom/pkg/mask"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.raw"+Extension)

	doc := New("photo.raw")
	doc.Curves.Luma.InsertPoint(128, 200)
	doc.RotationDegrees = 1.5
	doc.OrientationSteps = 1
	doc.Crop = &Crop{Left: 100, Top: 50, Width: 800, Height: 600}

	c := mask.NewContainer("sky")
	c.Add(mask.NewLinear(mask.LinearParams{StartX: 0, StartY: 0, EndX: 100, EndY: 0, Range: 40}))
	c.Adjustments.Exposure = -0.7
	doc.AddMask(*c)

	if err := doc.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := curve.EvaluateAt(loaded.Curves.Luma.Points, curve.DefaultTension, 128); got != 200 {
		t.Errorf("luma curve at 128 = %v, want 200", got)
	}
	if loaded.RotationDegrees != 1.5 || loaded.OrientationSteps != 1 {
		t.Errorf("rotation = (%v, %d)", loaded.RotationDegrees, loaded.OrientationSteps)
	}
	if len(loaded.Masks) != 1 || loaded.Masks[0].Name != "sky" {
		t.Fatalf("masks = %+v", loaded.Masks)
	}
	if loaded.Masks[0].Adjustments.Exposure != -0.7 {
		t.Errorf("exposure = %v, want -0.7", loaded.Masks[0].Adjustments.Exposure)
	}
	sub := loaded.Masks[0].SubMasks[0]
	if sub.Kind != mask.KindLinear || sub.Linear.Range != 40 {
		t.Errorf("linear sub-mask lost: %+v", sub)
	}
	crop, ok := loaded.CropRect()
	if !ok || crop.Width() != 800 {
		t.Errorf("crop = (%+v, %v)", crop, ok)
	}
}

func TestLoadOrNewWithoutSidecar(t *testing.T) {
	source := filepath.Join(t.TempDir(), "fresh.raw")

	doc, err := LoadOrNew(source)
	if err != nil {
		t.Fatalf("LoadOrNew: %v", err)
	}
	if !doc.Curves.Luma.IsIdentity() {
		t.Errorf("fresh document should carry identity curves")
	}
	if _, ok := doc.CropRect(); ok {
		t.Errorf("fresh document should be uncropped")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad"+Extension)
	if err := os.WriteFile(path, []byte("masks: [not: {valid"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("malformed sidecar loaded without error")
	}
	if derrors.KindOf(err) != derrors.KindDocument {
		t.Errorf("error kind = %v, want document", derrors.KindOf(err))
	}
}

func TestLoadNormalizesMissingCurves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old"+Extension)
	if err := os.WriteFile(path, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !doc.Curves.Luma.IsIdentity() || !doc.Curves.Blue.IsIdentity() {
		t.Errorf("missing channels not repaired to identity")
	}
}

func TestRemoveMaskUnknownIDIsNoOp(t *testing.T) {
	doc := New("a.raw")
	doc.AddMask(*mask.NewContainer("one"))

	doc.RemoveMask("missing")
	if len(doc.Masks) != 1 {
		t.Errorf("unknown id removed a mask")
	}

	doc.RemoveMask(doc.Masks[0].ID)
	if len(doc.Masks) != 0 {
		t.Errorf("mask not removed")
	}
}
