package curve

// Catmull-Rom interpolation through the control points, emitted as cubic
// Bezier segments so the same path drives both canvas drawing and lookup-table
// sampling. Synthetic neighbors at the sequence boundaries duplicate the
// nearest real point (clamped boundary condition), which keeps the curve from
// overshooting outside the first and last segment.

// DefaultTension is the Catmull-Rom tension used for tone curves.
const DefaultTension = 0.5

// Segment is one cubic Bezier piece of an interpolated path.
type Segment struct {
	P0  ControlPoint
	CP1 ControlPoint
	CP2 ControlPoint
	P1  ControlPoint
}

// Eval evaluates the cubic Bezier at parameter t in [0,1].
func (s Segment) Eval(t float64) ControlPoint {
	inv := 1 - t
	b0 := inv * inv * inv
	b1 := 3 * inv * inv * t
	b2 := 3 * inv * t * t
	b3 := t * t * t
	return ControlPoint{
		X: b0*s.P0.X + b1*s.CP1.X + b2*s.CP2.X + b3*s.P1.X,
		Y: b0*s.P0.Y + b1*s.CP1.Y + b2*s.CP2.Y + b3*s.P1.Y,
	}
}

// Path converts ordered control points into Catmull-Rom cubic segments.
//
// For control point i with neighbors i-1..i+2 (clamped at the ends), the
// tangent control points are
//
//	cp1 = p[i]   + (p[i+1] - p[i-1]) / 6 * tension
//	cp2 = p[i+1] - (p[i+2] - p[i])   / 6 * tension
//
// A list with fewer than two points yields no segments.
func Path(points []ControlPoint, tension float64) []Segment {
	if len(points) < 2 {
		return nil
	}
	segments := make([]Segment, 0, len(points)-1)
	at := func(i int) ControlPoint {
		if i < 0 {
			i = 0
		}
		if i > len(points)-1 {
			i = len(points) - 1
		}
		return points[i]
	}
	for i := 0; i < len(points)-1; i++ {
		p0 := at(i - 1)
		p1 := at(i)
		p2 := at(i + 1)
		p3 := at(i + 2)
		segments = append(segments, Segment{
			P0: p1,
			CP1: ControlPoint{
				X: p1.X + (p2.X-p0.X)/6*tension,
				Y: p1.Y + (p2.Y-p0.Y)/6*tension,
			},
			CP2: ControlPoint{
				X: p2.X - (p3.X-p1.X)/6*tension,
				Y: p2.Y - (p3.Y-p1.Y)/6*tension,
			},
			P1: p2,
		})
	}
	return segments
}

// EvaluateAt returns the path's y value at the given x.
//
// Control-point x values return the control point's y exactly. Between
// points, the containing segment is solved for t by bisection; x is treated
// as monotonic within a segment, which holds for sorted tone-curve points at
// the default tension. Outside the point range the endpoint y is returned.
func EvaluateAt(points []ControlPoint, tension, x float64) float64 {
	if len(points) == 0 {
		return x
	}
	if x <= points[0].X {
		return points[0].Y
	}
	last := points[len(points)-1]
	if x >= last.X {
		return last.Y
	}
	for _, p := range points {
		if p.X == x {
			return p.Y
		}
	}

	segments := Path(points, tension)
	for i, seg := range segments {
		if x < points[i].X || x > points[i+1].X {
			continue
		}
		lo, hi := 0.0, 1.0
		for iter := 0; iter < 40; iter++ {
			mid := (lo + hi) / 2
			if seg.Eval(mid).X < x {
				lo = mid
			} else {
				hi = mid
			}
		}
		return seg.Eval((lo + hi) / 2).Y
	}
	return last.Y
}

// LUT samples the channel's path into a 256-entry lookup table mapping input
// level to output level, clamped to [0,255].
func (c *Channel) LUT() [256]uint8 {
	var table [256]uint8
	points := c.Points
	if len(points) < 2 {
		points = identityPoints()
	}
	for i := range table {
		y := EvaluateAt(points, DefaultTension, float64(i))
		table[i] = uint8(clamp(y+0.5, 0, 255))
	}
	return table
}
