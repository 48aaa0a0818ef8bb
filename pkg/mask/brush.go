package mask

import "github.com/go-darkroom/darkroom/pkg/geometry"

// Tool identifies how a stroke was captured.
type Tool int

const (
	ToolBrush Tool = iota
	ToolEraser
)

// String returns a human-readable representation of the tool.
func (t Tool) String() string {
	if t == ToolEraser {
		return "eraser"
	}
	return "brush"
}

// Line is one captured freehand stroke. BrushSize is the stroke diameter in
// image pixels; Feather is the edge softness fraction in [0, 1].
type Line struct {
	Tool      Tool             `yaml:"tool" json:"tool"`
	BrushSize float64          `yaml:"brush_size" json:"brushSize"`
	Feather   float64          `yaml:"feather" json:"feather"`
	Points    []geometry.Point `yaml:"points" json:"points"`
}

// BrushParams holds the append-only stroke log of a brush sub-mask. The only
// removal path is eraser filtering, which drops whole intersecting lines.
type BrushParams struct {
	Lines []Line `yaml:"lines" json:"lines"`
}

// WithBrushLine returns a copy with the line appended. Lines with no points
// are dropped rather than stored.
func (m SubMask) WithBrushLine(line Line) SubMask {
	if len(line.Points) == 0 {
		return m
	}
	var lines []Line
	if m.Brush != nil {
		lines = append(lines, m.Brush.Lines...)
	}
	lines = append(lines, line)
	m.Brush = &BrushParams{Lines: lines}
	return m
}

// WithLinesErased returns a copy with every line intersecting the eraser
// stroke removed entirely. Erasing is all-or-nothing per line; overlapping
// segments are not split.
func (m SubMask) WithLinesErased(eraser Line) SubMask {
	if m.Brush == nil {
		return m
	}
	kept := make([]Line, 0, len(m.Brush.Lines))
	for _, line := range m.Brush.Lines {
		if !LinesIntersect(eraser, line) {
			kept = append(kept, line)
		}
	}
	m.Brush = &BrushParams{Lines: kept}
	return m
}

// LinesIntersect reports whether two strokes touch: true if any pair of
// points, one from each stroke, lies closer than the sum of the strokes' half
// brush sizes. The test is symmetric in its arguments.
func LinesIntersect(a, b Line) bool {
	threshold := a.BrushSize/2 + b.BrushSize/2
	for _, pa := range a.Points {
		for _, pb := range b.Points {
			if pa.Distance(pb) < threshold {
				return true
			}
		}
	}
	return false
}
