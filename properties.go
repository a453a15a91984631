package pptlabs

// DocumentLayout represents the slide dimensions read from p:sldSz.
type DocumentLayout struct {
	CX   int64 // width in EMU (English Metric Units)
	CY   int64 // height in EMU
	Name string
}

// Standard layout names as used by the sldSz type attribute.
const (
	LayoutScreen4x3   = "screen4x3"
	LayoutScreen16x9  = "screen16x9"
	LayoutScreen16x10 = "screen16x10"
	LayoutA4          = "A4"
	LayoutLetter      = "letter"
	LayoutCustom      = "custom"
)

// NewDocumentLayout creates a default 4:3 layout.
func NewDocumentLayout() *DocumentLayout {
	return &DocumentLayout{
		CX:   9144000, // 10 inches
		CY:   6858000, // 7.5 inches
		Name: LayoutScreen4x3,
	}
}

// setSize applies a p:sldSz element. Non-positive values keep the default.
func (dl *DocumentLayout) setSize(cx, cy int64, name string) {
	if cx > 0 {
		dl.CX = cx
	}
	if cy > 0 {
		dl.CY = cy
	}
	if name != "" {
		dl.Name = name
	} else {
		dl.Name = LayoutCustom
	}
}

// Contains reports whether the box of s lies entirely on the slide.
func (dl *DocumentLayout) Contains(s *Shape) bool {
	return s.offsetX >= 0 && s.offsetY >= 0 &&
		s.offsetX+s.width <= dl.CX && s.offsetY+s.height <= dl.CY
}
