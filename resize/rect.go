package resize

// Rect is a free-standing Shape, useful for planning against geometry that
// does not come from a document.
type Rect struct {
	Left, Top, Width, Height float64
}

func (r *Rect) GetLeft() float64   { return r.Left }
func (r *Rect) GetTop() float64    { return r.Top }
func (r *Rect) GetWidth() float64  { return r.Width }
func (r *Rect) GetHeight() float64 { return r.Height }

func (r *Rect) SetLeft(v float64)   { r.Left = v }
func (r *Rect) SetTop(v float64)    { r.Top = v }
func (r *Rect) SetWidth(v float64)  { r.Width = v }
func (r *Rect) SetHeight(v float64) { r.Height = v }

// Shapes returns rs as a selection.
func Shapes(rs ...*Rect) []Shape {
	out := make([]Shape, len(rs))
	for i, r := range rs {
		out[i] = r
	}
	return out
}
