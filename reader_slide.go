package pptlabs

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

func (r *PPTXReader) readSlide(index map[string]*zip.File, path string) (*Slide, error) {
	data, err := readFileFromZip(index, path)
	if err != nil {
		return nil, err
	}

	slide := &Slide{path: path, data: data}
	if err := parseSlideXML(data, slide); err != nil {
		return nil, err
	}
	return slide, nil
}

// slideParseState tracks where the decoder is relative to the shape tree.
type slideParseState struct {
	stack      []string // local names of open elements
	treeDepth  int      // depth of p:spTree, 0 when outside
	treeDone   bool
	cur        *Shape
	shapeDepth int
}

// parseSlideXML collects the top-level shapes of the slide's p:spTree along
// with the byte spans of their a:off and a:ext tags. Group children live in
// the group's child coordinate space and are not collected.
func parseSlideXML(data []byte, slide *Slide) error {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	state := &slideParseState{}

	for {
		start := decoder.InputOffset()
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to parse slide xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			state.stack = append(state.stack, t.Name.Local)
			depth := len(state.stack)

			switch {
			case t.Name.Local == "cSld" && depth == 2:
				slide.name = attrValue(t.Attr, "name")
			case t.Name.Local == "spTree" && state.treeDepth == 0 && !state.treeDone:
				state.treeDepth = depth
			case state.cur == nil && state.treeDepth > 0 && depth == state.treeDepth+1 && isShapeElement(t.Name.Local):
				state.cur = &Shape{kind: ShapeKind(t.Name.Local)}
				state.shapeDepth = depth
			case state.cur != nil:
				state.shapeElement(t, span{start: start, end: decoder.InputOffset()})
			}

		case xml.EndElement:
			depth := len(state.stack)
			if state.cur != nil && depth == state.shapeDepth {
				sh := state.cur
				sh.orig = [4]int64{sh.offsetX, sh.offsetY, sh.width, sh.height}
				slide.shapes = append(slide.shapes, sh)
				state.cur = nil
			}
			if depth == state.treeDepth {
				state.treeDepth = 0
				state.treeDone = true
			}
			state.stack = state.stack[:depth-1]
		}
	}
	return nil
}

// shapeElement handles a start tag nested inside the current shape.
func (st *slideParseState) shapeElement(t xml.StartElement, tagSpan span) {
	sh := st.cur
	depth := len(st.stack)
	rel := depth - st.shapeDepth

	switch t.Name.Local {
	case "cNvPr":
		// nvSpPr/cNvPr, nvPicPr/cNvPr, nvGrpSpPr/cNvPr, ...
		if rel != 2 {
			return
		}
		if v, err := strconv.Atoi(attrValue(t.Attr, "id")); err == nil {
			sh.id = v
		}
		sh.name = attrValue(t.Attr, "name")
	case "xfrm":
		if !st.isGeometryXfrm(depth) {
			return
		}
		for _, attr := range t.Attr {
			switch attr.Name.Local {
			case "flipH":
				sh.flipHorizontal = attr.Value == "1" || attr.Value == "true"
			case "flipV":
				sh.flipVertical = attr.Value == "1" || attr.Value == "true"
			case "rot":
				// rotation in 60000ths of a degree
				if v, err := strconv.ParseInt(attr.Value, 10, 64); err == nil {
					sh.rotation = float64(v) / 60000
				}
			}
		}
	case "off":
		if sh.offSpan.valid() || st.stack[depth-2] != "xfrm" || !st.isGeometryXfrm(depth-1) {
			return
		}
		x, errX := strconv.ParseInt(attrValue(t.Attr, "x"), 10, 64)
		y, errY := strconv.ParseInt(attrValue(t.Attr, "y"), 10, 64)
		if errX != nil || errY != nil {
			return
		}
		sh.offsetX, sh.offsetY = x, y
		sh.offSpan = tagSpan
	case "ext":
		if sh.extSpan.valid() || st.stack[depth-2] != "xfrm" || !st.isGeometryXfrm(depth-1) {
			return
		}
		cx, errX := strconv.ParseInt(attrValue(t.Attr, "cx"), 10, 64)
		cy, errY := strconv.ParseInt(attrValue(t.Attr, "cy"), 10, 64)
		if errX != nil || errY != nil {
			return
		}
		sh.width, sh.height = cx, cy
		sh.extSpan = tagSpan
	}
}

// isGeometryXfrm reports whether the xfrm element at xfrmDepth carries the
// shape's own box: p:graphicFrame/p:xfrm, or a:xfrm under spPr / grpSpPr.
func (st *slideParseState) isGeometryXfrm(xfrmDepth int) bool {
	switch xfrmDepth - st.shapeDepth {
	case 1:
		return true
	case 2:
		parent := st.stack[xfrmDepth-2]
		return parent == "spPr" || parent == "grpSpPr"
	}
	return false
}

func attrValue(attrs []xml.Attr, local string) string {
	for _, a := range attrs {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
