// Package resize implements the stretch engine used to align one edge of a
// group of shapes to a reference edge.
//
// Given a selection of shapes and a direction, the engine picks a reference
// shape according to the configured RefType, computes the reference edge,
// and moves the matching edge of every other shape onto it. When a shape lies
// entirely on the far side of the reference edge, its opposite edge is
// extended instead ("opposite stretch"), so shapes never flip inside out.
//
// The engine works on the Shape interface only and never touches a document
// model directly. The pptlabs package adapts .pptx shapes to it, and Rect
// serves synthetic selections.
package resize

import "fmt"

// Shape is the geometry of a rectangular shape on a 2D canvas.
// Left and Top are offsets from the canvas origin.
type Shape interface {
	GetLeft() float64
	GetTop() float64
	GetWidth() float64
	GetHeight() float64
	SetLeft(v float64)
	SetTop(v float64)
	SetWidth(v float64)
	SetHeight(v float64)
}

// RightEdge returns the x coordinate of the right edge of s.
func RightEdge(s Shape) float64 { return s.GetLeft() + s.GetWidth() }

// BottomEdge returns the y coordinate of the bottom edge of s.
func BottomEdge(s Shape) float64 { return s.GetTop() + s.GetHeight() }

// RefType selects how the reference shape is chosen.
type RefType int

const (
	// FirstSelected uses the first shape of the selection.
	FirstSelected RefType = iota + 1
	// Outermost uses the shape whose edge lies furthest in the stretch direction.
	Outermost
)

// String returns the settings-file spelling of the reference type.
func (t RefType) String() string {
	switch t {
	case FirstSelected:
		return "first-selected"
	case Outermost:
		return "outermost"
	default:
		return fmt.Sprintf("RefType(%d)", int(t))
	}
}

// ParseRefType parses a reference type name. Both the hyphenated form used
// in settings files and the CamelCase form are accepted.
func ParseRefType(s string) (RefType, error) {
	switch s {
	case "first-selected", "firstselected", "FirstSelected", "first":
		return FirstSelected, nil
	case "outermost", "Outermost":
		return Outermost, nil
	default:
		return 0, fmt.Errorf("unknown reference type %q (want first-selected or outermost)", s)
	}
}

// Direction is the edge being stretched.
type Direction int

const (
	Left Direction = iota
	Right
	Top
	Bottom
)

// String returns the lower-case direction name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection parses a lower-case direction name.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "top":
		return Top, nil
	case "bottom":
		return Bottom, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}

// Opposite returns the direction of the facing edge on the same axis.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Top:
		return Bottom
	default:
		return Top
	}
}

// lowSide reports whether the reference edge for d is the minimum along its axis.
func (d Direction) lowSide() bool { return d == Left || d == Top }

// Edge returns the coordinate of the edge of s facing d.
func Edge(d Direction, s Shape) float64 {
	switch d {
	case Left:
		return s.GetLeft()
	case Right:
		return RightEdge(s)
	case Top:
		return s.GetTop()
	default:
		return BottomEdge(s)
	}
}
