// Package pptxtest builds small .pptx packages for tests.
package pptxtest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Kind names the spTree element generated for a Shape.
type Kind string

const (
	KindShape        Kind = "sp"
	KindPicture      Kind = "pic"
	KindGroup        Kind = "grpSp"
	KindGraphicFrame Kind = "graphicFrame"
)

// Shape describes one top-level shape. Coordinates are EMU.
type Shape struct {
	ID   int
	Name string
	Kind Kind
	X, Y int64
	CX   int64
	CY   int64
	// Rot is the rotation in 60000ths of a degree.
	Rot   int64
	FlipH bool
	FlipV bool
	// NoGeometry emits an empty spPr, as layout-inherited placeholders do.
	NoGeometry bool
	// AlternateContent wraps the shape in mc:AlternateContent, with the
	// same shape as the choice and the fallback.
	AlternateContent bool
	// Children are emitted inside a group shape.
	Children []Shape
}

// CorePropertiesXML is the fixed docProps/core.xml content, exposed so tests
// can check that unrelated parts are copied verbatim.
const CorePropertiesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:title>fixture</dc:title></cp:coreProperties>`

// Build returns a package with one slide per element of slides.
func Build(slides ...[]Shape) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := []struct {
		name, body string
	}{
		{"[Content_Types].xml", contentTypes(len(slides))},
		{"_rels/.rels", rootRels},
		{"docProps/core.xml", CorePropertiesXML},
		{"ppt/presentation.xml", presentationXML(len(slides))},
		{"ppt/_rels/presentation.xml.rels", presentationRels(len(slides))},
	}
	for i, shapes := range slides {
		files = append(files, struct{ name, body string }{
			fmt.Sprintf("ppt/slides/slide%d.xml", i+1), SlideXML(shapes),
		})
	}

	for _, f := range files {
		w, err := zw.Create(f.name)
		if err != nil {
			panic(err)
		}
		if _, err := w.Write([]byte(f.body)); err != nil {
			panic(err)
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// WriteFile writes a package built from slides into dir and returns its path.
func WriteFile(t testing.TB, dir string, slides ...[]Shape) string {
	t.Helper()
	path := filepath.Join(dir, "deck.pptx")
	if err := os.WriteFile(path, Build(slides...), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// ReadPart returns the content of one part of a package.
func ReadPart(t testing.TB, pkg []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	if err != nil {
		t.Fatalf("open package: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		var b bytes.Buffer
		if _, err := b.ReadFrom(rc); err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return b.String()
	}
	t.Fatalf("part %s not found", name)
	return ""
}

const rootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/></Relationships>`

func contentTypes(n int) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	sb.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	sb.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	sb.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	sb.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i)
	}
	sb.WriteString(`</Types>`)
	return sb.String()
}

func presentationXML(n int) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	sb.WriteString(`<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">`)
	sb.WriteString(`<p:sldIdLst>`)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, `<p:sldId id="%d" r:id="rId%d"/>`, 255+i, 100+i)
	}
	sb.WriteString(`</p:sldIdLst>`)
	sb.WriteString(`<p:sldSz cx="12192000" cy="6858000"/>`)
	sb.WriteString(`<p:notesSz cx="6858000" cy="9144000"/>`)
	sb.WriteString(`</p:presentation>`)
	return sb.String()
}

func presentationRels(n int) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	// Reverse order: slide order must come from sldIdLst, not from the rels part.
	for i := n; i >= 1; i-- {
		fmt.Fprintf(&sb, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, 100+i, i)
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}

// SlideXML renders a slide part containing shapes.
func SlideXML(shapes []Shape) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	sb.WriteString(`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006">`)
	sb.WriteString(`<p:cSld><p:spTree>`)
	sb.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	sb.WriteString(`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`)
	for _, s := range shapes {
		writeShape(&sb, s)
	}
	sb.WriteString(`</p:spTree></p:cSld>`)
	sb.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return sb.String()
}

func writeShape(sb *strings.Builder, s Shape) {
	if s.AlternateContent {
		inner := s
		inner.AlternateContent = false
		sb.WriteString(`<mc:AlternateContent><mc:Choice Requires="p14">`)
		writeShape(sb, inner)
		sb.WriteString(`</mc:Choice><mc:Fallback>`)
		writeShape(sb, inner)
		sb.WriteString(`</mc:Fallback></mc:AlternateContent>`)
		return
	}

	name := escape(s.Name)
	off := fmt.Sprintf(`<a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/>`, s.X, s.Y, s.CX, s.CY)
	xfrm := xfrmAttrs(s)

	switch s.Kind {
	case KindGroup:
		fmt.Fprintf(sb, `<p:grpSp><p:nvGrpSpPr><p:cNvPr id="%d" name="%s"/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`, s.ID, name)
		fmt.Fprintf(sb, `<p:grpSpPr><a:xfrm%s>%s<a:chOff x="%d" y="%d"/><a:chExt cx="%d" cy="%d"/></a:xfrm></p:grpSpPr>`, xfrm, off, s.X, s.Y, s.CX, s.CY)
		for _, c := range s.Children {
			writeShape(sb, c)
		}
		sb.WriteString(`</p:grpSp>`)
	case KindGraphicFrame:
		fmt.Fprintf(sb, `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="%s"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>`, s.ID, name)
		fmt.Fprintf(sb, `<p:xfrm%s>%s</p:xfrm>`, xfrm, off)
		sb.WriteString(`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl><a:tblGrid><a:gridCol w="100"/></a:tblGrid></a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
	case KindPicture:
		fmt.Fprintf(sb, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="%s"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`, s.ID, name)
		sb.WriteString(`<p:blipFill><a:blip r:embed="rId9"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`)
		fmt.Fprintf(sb, `<p:spPr><a:xfrm%s>%s</a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`, xfrm, off)
	default:
		fmt.Fprintf(sb, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/>`, s.ID, name)
		if s.NoGeometry {
			sb.WriteString(`<p:nvPr><p:ph type="title"/></p:nvPr></p:nvSpPr><p:spPr/>`)
		} else {
			fmt.Fprintf(sb, `<p:nvPr/></p:nvSpPr><p:spPr><a:xfrm%s>%s</a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`, xfrm, off)
		}
		fmt.Fprintf(sb, `<p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:r><a:rPr lang="en-US"/><a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>`, name)
	}
}

// xfrmAttrs returns the rot/flipH/flipV attributes of the shape's xfrm.
func xfrmAttrs(s Shape) string {
	var b strings.Builder
	if s.Rot != 0 {
		fmt.Fprintf(&b, ` rot="%d"`, s.Rot)
	}
	if s.FlipH {
		b.WriteString(` flipH="1"`)
	}
	if s.FlipV {
		b.WriteString(` flipV="1"`)
	}
	return b.String()
}

func escape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		panic(err)
	}
	return b.String()
}
