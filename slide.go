package pptlabs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/VantageDataChat/pptlabs/resize"
)

// Slide is one slide part of the package.
type Slide struct {
	path   string // part name, e.g. ppt/slides/slide1.xml
	name   string // p:cSld name attribute
	data   []byte
	shapes []*Shape
}

// GetPath returns the part name of the slide.
func (s *Slide) GetPath() string { return s.path }

// GetName returns the slide name, which is usually empty.
func (s *Slide) GetName() string { return s.name }

// GetShapes returns the top-level shapes in document (z) order.
func (s *Slide) GetShapes() []*Shape { return s.shapes }

// GetShapeCount returns the number of top-level shapes.
func (s *Slide) GetShapeCount() int { return len(s.shapes) }

// ShapeByID returns the shape with the given cNvPr id.
func (s *Slide) ShapeByID(id int) (*Shape, error) {
	for _, sh := range s.shapes {
		if sh.id == id {
			return sh, nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", ErrShapeNotFound, id)
}

// ShapeByName returns the first shape with the given name.
func (s *Slide) ShapeByName(name string) (*Shape, error) {
	for _, sh := range s.shapes {
		if sh.name == name {
			return sh, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrShapeNotFound, name)
}

// Lookup resolves a shape reference. "#12" refers to cNvPr id 12; anything
// else is a shape name.
func (s *Slide) Lookup(ref string) (*Shape, error) {
	if rest, ok := strings.CutPrefix(ref, "#"); ok {
		id, err := strconv.Atoi(rest)
		if err != nil {
			return nil, fmt.Errorf("invalid shape id %q: %w", ref, err)
		}
		return s.ShapeByID(id)
	}
	return s.ShapeByName(ref)
}

// Select builds a selection from shape references, keeping their order.
// Without references every shape that has explicit geometry is selected in
// document order.
func (s *Slide) Select(refs ...string) (Selection, error) {
	if len(refs) == 0 {
		var sel Selection
		for _, sh := range s.shapes {
			if sh.HasGeometry() {
				sel = append(sel, sh)
			}
		}
		return sel, nil
	}

	sel := make(Selection, 0, len(refs))
	seen := make(map[*Shape]bool, len(refs))
	for _, ref := range refs {
		sh, err := s.Lookup(ref)
		if err != nil {
			return nil, err
		}
		if !sh.HasGeometry() {
			return nil, fmt.Errorf("%w: %s", ErrNoGeometry, sh)
		}
		if seen[sh] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateShape, sh)
		}
		seen[sh] = true
		sel = append(sel, sh)
	}
	return sel, nil
}

// IsModified reports whether any shape on the slide changed.
func (s *Slide) IsModified() bool {
	for _, sh := range s.shapes {
		if sh.IsModified() {
			return true
		}
	}
	return false
}

// Selection is an ordered set of shapes chosen for an operation.
type Selection []*Shape

// Geometry returns the selection as input for the resize engine.
func (sel Selection) Geometry() []resize.Shape {
	out := make([]resize.Shape, len(sel))
	for i, sh := range sel {
		out[i] = sh.Geometry()
	}
	return out
}
