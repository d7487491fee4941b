package scroll

import "math"

// Viewport is a Surface over a strip of Content columns shown through a window
// of Width columns. The offset is kept fractional so proportional positions
// survive round trips; Column rounds it for rendering.
type Viewport struct {
	Content float64
	Width   float64
	offset  float64
	// OnScroll runs after every offset change.
	OnScroll func()
}

func (v *Viewport) ScrollOffset() float64 { return v.offset }

func (v *Viewport) ScrollRange() float64 {
	return math.Max(v.Content-v.Width, 0)
}

func (v *Viewport) SetScrollOffset(offset float64) {
	offset = math.Max(0, math.Min(offset, v.ScrollRange()))
	if offset == v.offset {
		return
	}
	v.offset = offset
	if v.OnScroll != nil {
		v.OnScroll()
	}
}

// ScrollBy moves the offset by delta columns.
func (v *Viewport) ScrollBy(delta float64) {
	v.SetScrollOffset(v.offset + delta)
}

// Resize changes the extents and keeps the offset inside the new range.
func (v *Viewport) Resize(content, width float64) {
	v.Content, v.Width = content, width
	if r := v.ScrollRange(); v.offset > r {
		v.offset = r
	}
}

// Column is the first visible column.
func (v *Viewport) Column() int {
	return int(math.Round(v.offset))
}
