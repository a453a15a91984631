package pptlabs

import (
	"bytes"
	"errors"
	"testing"

	"github.com/VantageDataChat/pptlabs/internal/pptxtest"
)

// helper: build a package and read it back
func openFixture(t *testing.T, slides ...[]pptxtest.Shape) *Presentation {
	t.Helper()
	data := pptxtest.Build(slides...)
	pres, err := ReadFrom(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("ReadFrom failed: %v", err)
	}
	return pres
}

func firstSlide(t *testing.T, pres *Presentation) *Slide {
	t.Helper()
	slide, err := pres.GetSlide(0)
	if err != nil {
		t.Fatalf("GetSlide(0): %v", err)
	}
	return slide
}

func mixedSlide() []pptxtest.Shape {
	return []pptxtest.Shape{
		{ID: 2, Name: "Title 1", NoGeometry: true},
		{ID: 3, Name: "Box A", X: Point(10), Y: Point(20), CX: Point(100), CY: Point(50)},
		{ID: 4, Name: "Group", Kind: pptxtest.KindGroup, X: Point(200), Y: Point(200), CX: Point(80), CY: Point(40),
			Children: []pptxtest.Shape{
				{ID: 5, Name: "Inner", X: Point(200), Y: Point(200), CX: Point(10), CY: Point(10)},
			}},
		{ID: 6, Name: "Table", Kind: pptxtest.KindGraphicFrame, X: Point(300), Y: Point(10), CX: Point(120), CY: Point(60)},
		{ID: 7, Name: "Logo & Co", Kind: pptxtest.KindPicture, X: Point(5), Y: Point(300), CX: Point(30), CY: Point(30)},
	}
}

func TestReadSlidesInPresentationOrder(t *testing.T) {
	pres := openFixture(t,
		[]pptxtest.Shape{{ID: 2, Name: "first"}},
		[]pptxtest.Shape{{ID: 2, Name: "second"}},
		[]pptxtest.Shape{{ID: 2, Name: "third"}},
	)
	if pres.GetSlideCount() != 3 {
		t.Fatalf("expected 3 slides, got %d", pres.GetSlideCount())
	}
	for i, want := range []string{"first", "second", "third"} {
		slide, err := pres.GetSlide(i)
		if err != nil {
			t.Fatalf("GetSlide(%d): %v", i, err)
		}
		if got := slide.GetShapes()[0].GetName(); got != want {
			t.Errorf("slide %d: first shape %q, want %q", i, got, want)
		}
	}
	if _, err := pres.GetSlide(3); !errors.Is(err, ErrSlideOutOfRange) {
		t.Errorf("GetSlide(3) error = %v, want ErrSlideOutOfRange", err)
	}
}

func TestReadSlideSize(t *testing.T) {
	pres := openFixture(t, nil)
	layout := pres.GetLayout()
	if layout.CX != 12192000 || layout.CY != 6858000 {
		t.Errorf("layout = %dx%d, want 12192000x6858000", layout.CX, layout.CY)
	}
	if layout.Name != LayoutCustom {
		t.Errorf("layout name = %q, want %q", layout.Name, LayoutCustom)
	}
}

func TestReadTopLevelShapes(t *testing.T) {
	pres := openFixture(t, mixedSlide())
	slide := firstSlide(t, pres)

	if slide.GetShapeCount() != 5 {
		t.Fatalf("expected 5 top-level shapes, got %d", slide.GetShapeCount())
	}

	tests := []struct {
		name     string
		kind     ShapeKind
		geometry bool
		x, w     int64
	}{
		{"Title 1", ShapeKindShape, false, 0, 0},
		{"Box A", ShapeKindShape, true, Point(10), Point(100)},
		{"Group", ShapeKindGroup, true, Point(200), Point(80)},
		{"Table", ShapeKindGraphicFrame, true, Point(300), Point(120)},
		{"Logo & Co", ShapeKindPicture, true, Point(5), Point(30)},
	}
	for i, tt := range tests {
		sh := slide.GetShapes()[i]
		if sh.GetName() != tt.name {
			t.Errorf("shape %d name = %q, want %q", i, sh.GetName(), tt.name)
		}
		if sh.GetKind() != tt.kind {
			t.Errorf("%s: kind = %q, want %q", tt.name, sh.GetKind(), tt.kind)
		}
		if sh.HasGeometry() != tt.geometry {
			t.Errorf("%s: HasGeometry = %v, want %v", tt.name, sh.HasGeometry(), tt.geometry)
		}
		if sh.GetOffsetX() != tt.x || sh.GetWidth() != tt.w {
			t.Errorf("%s: x=%d w=%d, want x=%d w=%d", tt.name, sh.GetOffsetX(), sh.GetWidth(), tt.x, tt.w)
		}
		if sh.IsModified() {
			t.Errorf("%s: modified right after reading", tt.name)
		}
	}

	if _, err := slide.ShapeByName("Inner"); !errors.Is(err, ErrShapeNotFound) {
		t.Errorf("group child should not be a top-level shape, got err=%v", err)
	}
}

func TestReadTransforms(t *testing.T) {
	slide := firstSlide(t, openFixture(t, []pptxtest.Shape{
		{ID: 2, Name: "Turned", Rot: 5430000, FlipH: true, X: Point(10), CX: Point(40), CY: Point(20)},
		{ID: 3, Name: "Mirrored", Kind: pptxtest.KindPicture, FlipV: true, CX: Point(40), CY: Point(20)},
		{ID: 4, Name: "Plain", CX: Point(40), CY: Point(20)},
	}))

	tests := []struct {
		name         string
		rot          float64
		flipH, flipV bool
	}{
		{"Turned", 90.5, true, false},
		{"Mirrored", 0, false, true},
		{"Plain", 0, false, false},
	}
	for _, tt := range tests {
		sh, err := slide.ShapeByName(tt.name)
		if err != nil {
			t.Fatalf("ShapeByName(%s): %v", tt.name, err)
		}
		if sh.GetRotation() != tt.rot || sh.GetFlipHorizontal() != tt.flipH || sh.GetFlipVertical() != tt.flipV {
			t.Errorf("%s: rot=%v flipH=%v flipV=%v, want %v %v %v", tt.name,
				sh.GetRotation(), sh.GetFlipHorizontal(), sh.GetFlipVertical(), tt.rot, tt.flipH, tt.flipV)
		}
	}
}

func TestReadSkipsAlternateContent(t *testing.T) {
	slide := firstSlide(t, openFixture(t, []pptxtest.Shape{
		{ID: 2, Name: "Before", CX: Point(10), CY: Point(10)},
		{ID: 3, Name: "Ink", AlternateContent: true, X: Point(50), CX: Point(10), CY: Point(10)},
		{ID: 4, Name: "After", X: Point(100), CX: Point(10), CY: Point(10)},
	}))

	if slide.GetPath() != "ppt/slides/slide1.xml" {
		t.Errorf("path = %q", slide.GetPath())
	}
	if slide.GetShapeCount() != 2 {
		t.Fatalf("expected 2 top-level shapes, got %d", slide.GetShapeCount())
	}
	if _, err := slide.ShapeByName("Ink"); !errors.Is(err, ErrShapeNotFound) {
		t.Errorf("shape inside mc:AlternateContent should be skipped, got err=%v", err)
	}
	after, err := slide.ShapeByName("After")
	if err != nil || after.GetOffsetX() != Point(100) {
		t.Errorf("After = %v, %v", after, err)
	}
}

func TestLookup(t *testing.T) {
	slide := firstSlide(t, openFixture(t, mixedSlide()))

	sh, err := slide.Lookup("#6")
	if err != nil {
		t.Fatalf("Lookup(#6): %v", err)
	}
	if sh.GetName() != "Table" {
		t.Errorf("Lookup(#6) = %s", sh)
	}

	sh, err = slide.Lookup("Box A")
	if err != nil || sh.GetID() != 3 {
		t.Errorf("Lookup(Box A) = %v, %v", sh, err)
	}

	if _, err := slide.Lookup("#x"); err == nil {
		t.Error("expected error for malformed id")
	}
	if _, err := slide.Lookup("#99"); !errors.Is(err, ErrShapeNotFound) {
		t.Errorf("Lookup(#99) error = %v", err)
	}
}

func TestSelect(t *testing.T) {
	slide := firstSlide(t, openFixture(t, mixedSlide()))

	t.Run("keeps order", func(t *testing.T) {
		sel, err := slide.Select("Table", "#3", "Group")
		if err != nil {
			t.Fatalf("Select: %v", err)
		}
		var ids []int
		for _, sh := range sel {
			ids = append(ids, sh.GetID())
		}
		if len(ids) != 3 || ids[0] != 6 || ids[1] != 3 || ids[2] != 4 {
			t.Errorf("ids = %v, want [6 3 4]", ids)
		}
	})

	t.Run("default skips shapes without geometry", func(t *testing.T) {
		sel, err := slide.Select()
		if err != nil {
			t.Fatalf("Select: %v", err)
		}
		if len(sel) != 4 {
			t.Fatalf("len = %d, want 4", len(sel))
		}
		if sel[0].GetName() != "Box A" {
			t.Errorf("first = %s, want Box A", sel[0])
		}
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			refs []string
			want error
		}{
			{[]string{"Box A", "missing"}, ErrShapeNotFound},
			{[]string{"Box A", "Title 1"}, ErrNoGeometry},
			{[]string{"Box A", "#3"}, ErrDuplicateShape},
		}
		for _, tt := range tests {
			if _, err := slide.Select(tt.refs...); !errors.Is(err, tt.want) {
				t.Errorf("Select(%v) error = %v, want %v", tt.refs, err, tt.want)
			}
		}
	})
}

func TestReadRejectsInvalidInput(t *testing.T) {
	if _, err := ReadFrom(bytes.NewReader(nil), 0); err == nil {
		t.Error("expected error for empty input")
	}
	garbage := []byte("not a zip file at all")
	if _, err := ReadFrom(bytes.NewReader(garbage), int64(len(garbage))); err == nil {
		t.Error("expected error for non-zip input")
	}
	if _, err := Open("does-not-exist.pptx"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		source, target, want string
	}{
		{"ppt/presentation.xml", "slides/slide1.xml", "ppt/slides/slide1.xml"},
		{"ppt/presentation.xml", "/ppt/slides/slide2.xml", "ppt/slides/slide2.xml"},
		{"ppt/slides/slide1.xml", "../media/image1.png", "ppt/media/image1.png"},
		{"", "ppt/presentation.xml", "ppt/presentation.xml"},
	}
	for _, tt := range tests {
		if got := resolveTarget(tt.source, tt.target); got != tt.want {
			t.Errorf("resolveTarget(%q, %q) = %q, want %q", tt.source, tt.target, got, tt.want)
		}
	}
	if got := relsPathFor("ppt/presentation.xml"); got != "ppt/_rels/presentation.xml.rels" {
		t.Errorf("relsPathFor = %q", got)
	}
}
