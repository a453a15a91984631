package resize

// Lab holds the stretch settings shared by every stretch command.
// The zero value behaves as FirstSelected.
type Lab struct {
	ReferenceType RefType
}

// New creates a Lab that uses the first selected shape as reference.
func New() *Lab {
	return &Lab{ReferenceType: FirstSelected}
}

// Step is the stretch applied to one non-reference shape.
type Step struct {
	// Index is the position of the shape in the selection.
	Index int
	// Action is the edge that is moved onto the reference edge.
	Action Direction
	// Opposite is set when Action differs from the requested direction.
	Opposite bool
	// Aligned is set when the far edge of the shape already lies on the
	// reference edge. Such shapes are left as they are, so a second stretch
	// in the same direction changes nothing. Moving Action onto the edge
	// would instead collapse the shape to zero size along the axis: a
	// shape whose right edge touches the reference left edge keeps its
	// box on StretchLeft rather than shrinking to width 0 at that edge.
	Aligned bool
}

// Plan describes a stretch before it is applied.
type Plan struct {
	Direction      Direction
	ReferenceIndex int
	ReferenceEdge  float64
	Steps          []Step
}

// Plan computes the stretch for shapes without modifying them.
// ok is false when fewer than two shapes are selected.
func (l *Lab) Plan(shapes []Shape, d Direction) (plan Plan, ok bool) {
	if len(shapes) < 2 {
		return Plan{}, false
	}

	ref := l.referenceIndex(shapes, d)
	edge := Edge(d, shapes[ref])

	plan = Plan{
		Direction:      d,
		ReferenceIndex: ref,
		ReferenceEdge:  edge,
		Steps:          make([]Step, 0, len(shapes)-1),
	}
	for i, s := range shapes {
		if i == ref {
			continue
		}
		action := stretchAction(d, edge, s)
		plan.Steps = append(plan.Steps, Step{
			Index:    i,
			Action:   action,
			Opposite: action != d,
			Aligned:  Edge(d.Opposite(), s) == edge,
		})
	}
	return plan, true
}

// Apply performs the steps of p on shapes. shapes must be the selection
// p was computed from.
func (p Plan) Apply(shapes []Shape) {
	for _, st := range p.Steps {
		if st.Aligned {
			continue
		}
		stretchTo(st.Action, p.ReferenceEdge, shapes[st.Index])
	}
}

// Stretch aligns the d edge of every selected shape to the reference edge.
// Selections of fewer than two shapes are left untouched.
func (l *Lab) Stretch(shapes []Shape, d Direction) {
	plan, ok := l.Plan(shapes, d)
	if !ok {
		return
	}
	plan.Apply(shapes)
}

// StretchLeft stretches all shapes to the left edge of the reference shape.
func (l *Lab) StretchLeft(shapes []Shape) { l.Stretch(shapes, Left) }

// StretchRight stretches all shapes to the right edge of the reference shape.
func (l *Lab) StretchRight(shapes []Shape) { l.Stretch(shapes, Right) }

// StretchTop stretches all shapes to the top edge of the reference shape.
func (l *Lab) StretchTop(shapes []Shape) { l.Stretch(shapes, Top) }

// StretchBottom stretches all shapes to the bottom edge of the reference shape.
func (l *Lab) StretchBottom(shapes []Shape) { l.Stretch(shapes, Bottom) }

// referenceIndex returns the index of the reference shape. For Outermost,
// only a strictly more extreme edge replaces the current candidate, so the
// earliest shape wins ties.
func (l *Lab) referenceIndex(shapes []Shape, d Direction) int {
	if l.ReferenceType != Outermost {
		return 0
	}
	ref := 0
	refEdge := Edge(d, shapes[0])
	for i := 1; i < len(shapes); i++ {
		e := Edge(d, shapes[i])
		if (d.lowSide() && refEdge > e) || (!d.lowSide() && refEdge < e) {
			ref = i
			refEdge = e
		}
	}
	return ref
}

// stretchAction picks the edge of s to move onto edge. A shape lying wholly
// on the far side of edge has its opposite edge extended instead. Equality
// keeps the requested direction.
func stretchAction(d Direction, edge float64, s Shape) Direction {
	switch d {
	case Left:
		if RightEdge(s) < edge {
			return Right
		}
	case Right:
		if s.GetLeft() > edge {
			return Left
		}
	case Top:
		if BottomEdge(s) < edge {
			return Bottom
		}
	case Bottom:
		if s.GetTop() > edge {
			return Top
		}
	}
	return d
}

// stretchTo moves the a edge of s to edge, keeping the facing edge fixed.
func stretchTo(a Direction, edge float64, s Shape) {
	switch a {
	case Left:
		s.SetWidth(s.GetWidth() + s.GetLeft() - edge)
		s.SetLeft(edge)
	case Right:
		s.SetWidth(s.GetWidth() + edge - RightEdge(s))
	case Top:
		s.SetHeight(s.GetHeight() + s.GetTop() - edge)
		s.SetTop(edge)
	case Bottom:
		s.SetHeight(s.GetHeight() + edge - BottomEdge(s))
	}
}
