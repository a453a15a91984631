package pptlabs

import (
	"fmt"

	"github.com/VantageDataChat/pptlabs/resize"
)

// ShapeKind is the spTree element a shape was read from.
type ShapeKind string

const (
	ShapeKindShape        ShapeKind = "sp"
	ShapeKindPicture      ShapeKind = "pic"
	ShapeKindConnector    ShapeKind = "cxnSp"
	ShapeKindGroup        ShapeKind = "grpSp"
	ShapeKindGraphicFrame ShapeKind = "graphicFrame"
	ShapeKindContentPart  ShapeKind = "contentPart"
)

// isShapeElement reports whether local names a top-level spTree shape.
func isShapeElement(local string) bool {
	switch ShapeKind(local) {
	case ShapeKindShape, ShapeKindPicture, ShapeKindConnector,
		ShapeKindGroup, ShapeKindGraphicFrame, ShapeKindContentPart:
		return true
	}
	return false
}

// span is a half-open byte range inside a slide part.
type span struct {
	start, end int64
}

func (s span) valid() bool { return s.end > s.start }

// Shape is a top-level shape of a slide. Geometry is kept in EMU exactly as
// stored in the slide part; only offset and extent are writable.
type Shape struct {
	id             int
	name           string
	kind           ShapeKind
	offsetX        int64   // in EMU
	offsetY        int64   // in EMU
	width          int64   // in EMU
	height         int64   // in EMU
	rotation       float64 // in degrees, clockwise
	flipHorizontal bool
	flipVertical   bool

	// byte spans of the <a:off> and <a:ext> start tags
	offSpan span
	extSpan span
	// geometry as read, used to detect changes
	orig [4]int64
}

func (s *Shape) GetID() int              { return s.id }
func (s *Shape) GetName() string         { return s.name }
func (s *Shape) GetKind() ShapeKind      { return s.kind }
func (s *Shape) GetOffsetX() int64       { return s.offsetX }
func (s *Shape) GetOffsetY() int64       { return s.offsetY }
func (s *Shape) GetWidth() int64         { return s.width }
func (s *Shape) GetHeight() int64        { return s.height }
func (s *Shape) GetRotation() float64    { return s.rotation }
func (s *Shape) GetFlipHorizontal() bool { return s.flipHorizontal }
func (s *Shape) GetFlipVertical() bool   { return s.flipVertical }

func (s *Shape) SetWidth(w int64) *Shape  { s.width = w; return s }
func (s *Shape) SetHeight(h int64) *Shape { s.height = h; return s }

// SetPosition sets both offset X and Y in EMU.
func (s *Shape) SetPosition(x, y int64) *Shape {
	s.offsetX = x
	s.offsetY = y
	return s
}

// SetSize sets both width and height in EMU.
func (s *Shape) SetSize(w, h int64) *Shape {
	s.width = w
	s.height = h
	return s
}

// HasGeometry reports whether the slide part stores an explicit offset and
// extent for the shape. Placeholders that inherit their box from the layout
// do not, and cannot be resized.
func (s *Shape) HasGeometry() bool {
	return s.offSpan.valid() && s.extSpan.valid()
}

// IsModified reports whether the geometry differs from what was read.
func (s *Shape) IsModified() bool {
	return s.orig != [4]int64{s.offsetX, s.offsetY, s.width, s.height}
}

// Reset restores the geometry that was read from the slide part.
func (s *Shape) Reset() {
	s.offsetX, s.offsetY, s.width, s.height = s.orig[0], s.orig[1], s.orig[2], s.orig[3]
}

// String returns a short label such as `#4 "Rectangle 3"`.
func (s *Shape) String() string {
	return fmt.Sprintf("#%d %q", s.id, s.name)
}

// Geometry adapts s to the resize engine. Coordinates are EMU; the engine
// only adds and subtracts them, so values stay integral.
func (s *Shape) Geometry() resize.Shape {
	return shapeGeometry{s}
}

type shapeGeometry struct {
	s *Shape
}

func (g shapeGeometry) GetLeft() float64   { return float64(g.s.offsetX) }
func (g shapeGeometry) GetTop() float64    { return float64(g.s.offsetY) }
func (g shapeGeometry) GetWidth() float64  { return float64(g.s.width) }
func (g shapeGeometry) GetHeight() float64 { return float64(g.s.height) }

func (g shapeGeometry) SetLeft(v float64)   { g.s.offsetX = clampEMU(v) }
func (g shapeGeometry) SetTop(v float64)    { g.s.offsetY = clampEMU(v) }
func (g shapeGeometry) SetWidth(v float64)  { g.s.width = clampEMU(v) }
func (g shapeGeometry) SetHeight(v float64) { g.s.height = clampEMU(v) }
