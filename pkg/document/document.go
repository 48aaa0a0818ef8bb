// Package document persists a photograph's non-destructive adjustments as a
// YAML sidecar next to the source file. The source pixels are never touched;
// everything the editor does lives in this document.
package document

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/go-darkroom/darkroom/pkg/curve"
	derrors "github.com/go-darkroom/darkroom/pkg/errors"
	"github.com/go-darkroom/darkroom/pkg/geometry"
	"github.com/go-darkroom/darkroom/pkg/mask"
)

// Version is the current sidecar schema version.
const Version = 1

// Extension is appended to the source file name to form the sidecar path.
const Extension = ".darkroom.yaml"

// Crop is the stored crop rectangle in image-space pixels.
type Crop struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Rect converts the stored crop to a geometry rect.
func (c Crop) Rect() geometry.Rect {
	return geometry.RectFromLTWH(c.Left, c.Top, c.Width, c.Height)
}

// Document is the full adjustment state of one photograph.
type Document struct {
	Version          int              `yaml:"version"`
	Source           string           `yaml:"source,omitempty"`
	Curves           curve.CurveSet   `yaml:"curves"`
	Masks            []mask.Container `yaml:"masks,omitempty"`
	Crop             *Crop            `yaml:"crop,omitempty"`
	RotationDegrees  float64          `yaml:"rotation,omitempty"`
	OrientationSteps int              `yaml:"orientation_steps,omitempty"`
}

// New creates an empty document with identity curves.
func New(source string) *Document {
	return &Document{
		Version: Version,
		Source:  source,
		Curves:  curve.NewCurveSet(),
	}
}

// SidecarPath returns the sidecar path for a source image path.
func SidecarPath(source string) string {
	return source + Extension
}

// Load reads and decodes a sidecar document. A missing file is an error; use
// LoadOrNew for the open-a-fresh-photo path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, derrors.E("document.Load", derrors.KindDocument, err).WithPath(path)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, derrors.E("document.Load", derrors.KindDocument, err).WithPath(path)
	}
	doc.normalize()
	return &doc, nil
}

// LoadOrNew loads the sidecar for a source image, or returns a fresh document
// when no sidecar exists yet.
func LoadOrNew(source string) (*Document, error) {
	path := SidecarPath(source)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(source), nil
	}
	return Load(path)
}

// Save writes the document atomically: encode to a temp file in the target
// directory, then rename over the destination.
func (d *Document) Save(path string) error {
	d.Version = Version
	data, err := yaml.Marshal(d)
	if err != nil {
		return derrors.E("document.Save", derrors.KindDocument, err).WithPath(path)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".darkroom-*")
	if err != nil {
		return derrors.E("document.Save", derrors.KindDocument, err).WithPath(path)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return derrors.E("document.Save", derrors.KindDocument, err).WithPath(path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return derrors.E("document.Save", derrors.KindDocument, err).WithPath(path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return derrors.E("document.Save", derrors.KindDocument, err).WithPath(path)
	}
	return nil
}

// normalize repairs a decoded document: missing curve channels become
// identity so older or hand-edited sidecars still load.
func (d *Document) normalize() {
	for _, ch := range []*curve.Channel{&d.Curves.Luma, &d.Curves.Red, &d.Curves.Green, &d.Curves.Blue} {
		if len(ch.Points) < 2 {
			*ch = curve.NewChannel()
		}
	}
}

// PatchCurves replaces only the tone curves, leaving masks and crop state
// untouched.
func (d *Document) PatchCurves(c curve.CurveSet) {
	d.Curves = c
}

// PatchMasks replaces only the mask container list.
func (d *Document) PatchMasks(masks []mask.Container) {
	d.Masks = masks
}

// FindMask returns the container with the given id.
func (d *Document) FindMask(id string) (*mask.Container, bool) {
	for i := range d.Masks {
		if d.Masks[i].ID == id {
			return &d.Masks[i], true
		}
	}
	return nil, false
}

// AddMask appends a container to the compositing order.
func (d *Document) AddMask(c mask.Container) {
	d.Masks = append(d.Masks, c)
}

// RemoveMask deletes the container with the given id. Unknown ids are a
// no-op.
func (d *Document) RemoveMask(id string) {
	for i := range d.Masks {
		if d.Masks[i].ID == id {
			d.Masks = append(d.Masks[:i], d.Masks[i+1:]...)
			return
		}
	}
}

// CropRect returns the crop as a geometry rect, or ok=false when uncropped.
func (d *Document) CropRect() (geometry.Rect, bool) {
	if d.Crop == nil {
		return geometry.Rect{}, false
	}
	return d.Crop.Rect(), true
}
