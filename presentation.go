// Package pptlabs reads PowerPoint presentation files (.pptx), exposes the
// geometry of each slide's shapes, and writes the file back with only the
// changed geometry patched in.
//
// Every part of the package that is not a modified slide is copied through
// untouched, so documents produced by any editor survive a round trip. The
// resize subpackage provides the stretch engine that operates on the shapes.
//
// See the Version variable for the current library version.
package pptlabs

import (
	"archive/zip"
	"errors"
	"fmt"
)

// Sentinel errors returned by lookups and selections.
var (
	ErrSlideOutOfRange = errors.New("slide index out of range")
	ErrShapeNotFound   = errors.New("shape not found")
	ErrNoGeometry      = errors.New("shape has no explicit position and size")
	ErrDuplicateShape  = errors.New("shape selected more than once")
)

// Presentation is an opened .pptx package.
type Presentation struct {
	// entries holds every zip entry in archive order.
	entries []*zip.File
	slides  []*Slide
	layout  *DocumentLayout
}

// GetLayout returns the slide size.
func (p *Presentation) GetLayout() *DocumentLayout {
	return p.layout
}

// GetSlide returns a slide by zero-based index.
func (p *Presentation) GetSlide(index int) (*Slide, error) {
	if index < 0 || index >= len(p.slides) {
		return nil, fmt.Errorf("%w: %d (have %d slides)", ErrSlideOutOfRange, index, len(p.slides))
	}
	return p.slides[index], nil
}

// GetSlideCount returns the number of slides.
func (p *Presentation) GetSlideCount() int {
	return len(p.slides)
}

// IsModified reports whether any shape geometry changed since reading.
func (p *Presentation) IsModified() bool {
	for _, s := range p.slides {
		if s.IsModified() {
			return true
		}
	}
	return false
}

// GetPartNames returns the names of all parts in the package, in archive order.
func (p *Presentation) GetPartNames() []string {
	names := make([]string, len(p.entries))
	for i, f := range p.entries {
		names[i] = f.Name
	}
	return names
}
