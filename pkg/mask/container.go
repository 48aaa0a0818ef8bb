package mask

import "github.com/google/uuid"

// Adjustments is the bundle of local tone adjustments a container applies
// through its composited mask. Values are interpreted by the external
// renderer; the editor only stores and patches them.
type Adjustments struct {
	Exposure    float64 `yaml:"exposure" json:"exposure"`
	Contrast    float64 `yaml:"contrast" json:"contrast"`
	Highlights  float64 `yaml:"highlights" json:"highlights"`
	Shadows     float64 `yaml:"shadows" json:"shadows"`
	Saturation  float64 `yaml:"saturation" json:"saturation"`
	Temperature float64 `yaml:"temperature" json:"temperature"`
}

// Container is a named, orderable group of sub-masks sharing one set of local
// adjustments. The photograph owns an ordered list of containers; list order
// defines compositing precedence for the external renderer.
type Container struct {
	ID          string      `yaml:"id" json:"id"`
	Name        string      `yaml:"name" json:"name"`
	Invert      bool        `yaml:"invert" json:"invert"`
	Opacity     float64     `yaml:"opacity" json:"opacity"`
	Visible     bool        `yaml:"visible" json:"visible"`
	SubMasks    []SubMask   `yaml:"sub_masks" json:"subMasks"`
	Adjustments Adjustments `yaml:"adjustments" json:"adjustments"`
}

// NewContainer creates an empty visible container at full opacity.
func NewContainer(name string) *Container {
	return &Container{
		ID:      uuid.NewString(),
		Name:    name,
		Opacity: 100,
		Visible: true,
	}
}

// Add appends a sub-mask to the container.
func (c *Container) Add(m SubMask) {
	c.SubMasks = append(c.SubMasks, m)
}

// Remove deletes the sub-mask with the given id. Unknown ids are a no-op.
func (c *Container) Remove(id string) {
	for i, m := range c.SubMasks {
		if m.ID == id {
			c.SubMasks = append(c.SubMasks[:i], c.SubMasks[i+1:]...)
			return
		}
	}
}

// Find returns the sub-mask with the given id.
func (c *Container) Find(id string) (SubMask, bool) {
	for _, m := range c.SubMasks {
		if m.ID == id {
			return m, true
		}
	}
	return SubMask{}, false
}

// Replace swaps in a new snapshot for the sub-mask with the same id and
// reports whether a replacement happened. Unknown ids are a silent no-op.
func (c *Container) Replace(m SubMask) bool {
	for i := range c.SubMasks {
		if c.SubMasks[i].ID == m.ID {
			c.SubMasks[i] = m
			return true
		}
	}
	return false
}

// SetOpacity clamps and stores the container opacity in [0, 100].
func (c *Container) SetOpacity(v float64) {
	c.Opacity = clamp(v, 0, 100)
}
