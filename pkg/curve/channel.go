// Package curve implements the per-channel tone curve engine: ordered control
// points with pinned endpoints, Catmull-Rom path evaluation, lookup-table
// construction, and histogram silhouette scaling.
package curve

import "sort"

// minGap is the minimum horizontal distance between adjacent control points.
const minGap = 1

// ControlPoint is one draggable node of a tone curve, in [0,255] on both axes.
type ControlPoint struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Channel holds the ordered control points of one tone curve.
//
// Invariants maintained by every mutation: at least two points, sorted by X,
// the first point pinned at x=0 and the last at x=255. Out-of-range input is
// clamped silently rather than rejected.
type Channel struct {
	Points []ControlPoint `yaml:"points" json:"points"`
}

// NewChannel returns the two-point identity curve.
func NewChannel() Channel {
	return Channel{Points: identityPoints()}
}

func identityPoints() []ControlPoint {
	return []ControlPoint{{X: 0, Y: 0}, {X: 255, Y: 255}}
}

// InsertPoint adds a control point and keeps the list ordered by x.
// Returns the index the point landed at.
func (c *Channel) InsertPoint(x, y float64) int {
	if len(c.Points) < 2 {
		c.Points = identityPoints()
	}
	x = clamp(x, 0, 255)
	y = clamp(y, 0, 255)
	c.Points = append(c.Points, ControlPoint{X: x, Y: y})
	sort.SliceStable(c.Points, func(i, j int) bool {
		return c.Points[i].X < c.Points[j].X
	})
	for i, p := range c.Points {
		if p.X == x && p.Y == y {
			return i
		}
	}
	return -1
}

// MovePoint repositions the control point at index.
//
// Endpoints keep their x pinned at 0 and 255; only y moves. Interior points
// are clamped so they can never reach or cross a neighbor (minimum gap of one
// unit). An out-of-range index is a silent no-op.
func (c *Channel) MovePoint(index int, x, y float64) {
	if index < 0 || index >= len(c.Points) {
		return
	}
	y = clamp(y, 0, 255)

	switch index {
	case 0:
		c.Points[0] = ControlPoint{X: 0, Y: y}
	case len(c.Points) - 1:
		c.Points[index] = ControlPoint{X: 255, Y: y}
	default:
		lo := c.Points[index-1].X + minGap
		hi := c.Points[index+1].X - minGap
		if hi < lo {
			// Neighbors are already packed tighter than two gaps; keep x.
			c.Points[index].Y = y
			return
		}
		c.Points[index] = ControlPoint{X: clamp(x, lo, hi), Y: y}
	}
}

// DeletePoint removes the control point at index. Deleting an endpoint or an
// out-of-range index is a silent no-op.
func (c *Channel) DeletePoint(index int) {
	if index <= 0 || index >= len(c.Points)-1 {
		return
	}
	c.Points = append(c.Points[:index], c.Points[index+1:]...)
}

// Reset restores the two-point identity curve.
func (c *Channel) Reset() {
	c.Points = identityPoints()
}

// IsIdentity reports whether the channel is the untouched two-point curve.
func (c *Channel) IsIdentity() bool {
	return len(c.Points) == 2 &&
		c.Points[0] == ControlPoint{X: 0, Y: 0} &&
		c.Points[1] == ControlPoint{X: 255, Y: 255}
}

// CurveSet bundles the four per-channel tone curves of one adjustment.
type CurveSet struct {
	Luma  Channel `yaml:"luma" json:"luma"`
	Red   Channel `yaml:"red" json:"red"`
	Green Channel `yaml:"green" json:"green"`
	Blue  Channel `yaml:"blue" json:"blue"`
}

// NewCurveSet returns a curve set with all channels at identity.
func NewCurveSet() CurveSet {
	return CurveSet{
		Luma:  NewChannel(),
		Red:   NewChannel(),
		Green: NewChannel(),
		Blue:  NewChannel(),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
