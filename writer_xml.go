package pptlabs

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"time"
)

func writeRawXMLToZip(zw *zip.Writer, path string, content []byte, modified time.Time) error {
	fw, err := zw.CreateHeader(&zip.FileHeader{
		Name:     path,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return fmt.Errorf("failed to create %s in zip: %w", path, err)
	}
	_, err = fw.Write(content)
	return err
}

// attrPatch replaces the value of one attribute.
type attrPatch struct {
	name  string
	value int64
}

type tagPatch struct {
	span  span
	attrs []attrPatch
}

// patchSlideXML returns the slide part with the a:off / a:ext attributes of
// modified shapes rewritten. Everything outside those tags is kept byte for
// byte. Negative extents are written as 0, since OOXML extents are
// non-negative.
func patchSlideXML(slide *Slide) []byte {
	var patches []tagPatch
	for _, sh := range slide.shapes {
		if !sh.HasGeometry() || !sh.IsModified() {
			continue
		}
		if sh.offsetX != sh.orig[0] || sh.offsetY != sh.orig[1] {
			patches = append(patches, tagPatch{span: sh.offSpan, attrs: []attrPatch{
				{name: "x", value: sh.offsetX},
				{name: "y", value: sh.offsetY},
			}})
		}
		if sh.width != sh.orig[2] || sh.height != sh.orig[3] {
			patches = append(patches, tagPatch{span: sh.extSpan, attrs: []attrPatch{
				{name: "cx", value: max(sh.width, 0)},
				{name: "cy", value: max(sh.height, 0)},
			}})
		}
	}
	sort.Slice(patches, func(i, j int) bool {
		return patches[i].span.start < patches[j].span.start
	})

	data := slide.data
	var buf bytes.Buffer
	buf.Grow(len(data) + 16*len(patches))
	pos := int64(0)
	for _, p := range patches {
		buf.Write(data[pos:p.span.start])
		tag := data[p.span.start:p.span.end]
		for _, a := range p.attrs {
			tag = setAttr(tag, a.name, strconv.FormatInt(a.value, 10))
		}
		buf.Write(tag)
		pos = p.span.end
	}
	buf.Write(data[pos:])
	return buf.Bytes()
}

// setAttr returns tag with the value of the unprefixed attribute name
// replaced. The quote style of the original value is kept. tag is returned
// unchanged when the attribute is absent.
func setAttr(tag []byte, name, value string) []byte {
	key := []byte(name)
	for i := 0; i < len(tag); {
		j := bytes.Index(tag[i:], key)
		if j < 0 {
			return tag
		}
		j += i
		i = j + len(key)
		if j == 0 || !isXMLSpace(tag[j-1]) {
			continue
		}

		m := skipXMLSpace(tag, i)
		if m >= len(tag) || tag[m] != '=' {
			continue
		}
		m = skipXMLSpace(tag, m+1)
		if m >= len(tag) || (tag[m] != '"' && tag[m] != '\'') {
			continue
		}
		end := bytes.IndexByte(tag[m+1:], tag[m])
		if end < 0 {
			return tag
		}

		out := make([]byte, 0, len(tag)+len(value))
		out = append(out, tag[:m+1]...)
		out = append(out, value...)
		out = append(out, tag[m+1+end:]...)
		return out
	}
	return tag
}

func isXMLSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func skipXMLSpace(b []byte, i int) int {
	for i < len(b) && isXMLSpace(b[i]) {
		i++
	}
	return i
}
