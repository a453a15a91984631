package pptlabs

import (
	"fmt"
	"strings"
)

// Validate checks the presentation for geometry that cannot be stored and
// returns an error describing all problems found, or nil if the presentation
// is valid. A stretch may legitimately produce such geometry; it is clamped
// to zero on write.
func (p *Presentation) Validate() error {
	var errs []string

	if p.layout == nil {
		errs = append(errs, "document layout is nil")
	} else {
		if p.layout.CX <= 0 {
			errs = append(errs, "layout width (CX) must be positive")
		}
		if p.layout.CY <= 0 {
			errs = append(errs, "layout height (CY) must be positive")
		}
	}

	for i, slide := range p.slides {
		prefix := fmt.Sprintf("slide %d", i+1)
		for _, e := range validateSlide(slide) {
			errs = append(errs, prefix+": "+e)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(errs, "\n  "))
}

func validateSlide(s *Slide) []string {
	var errs []string
	for _, shape := range s.shapes {
		if !shape.HasGeometry() {
			continue
		}
		prefix := "shape " + shape.String()
		if shape.width < 0 {
			errs = append(errs, prefix+": width is negative")
		}
		if shape.height < 0 {
			errs = append(errs, prefix+": height is negative")
		}
	}
	return errs
}
