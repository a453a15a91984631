package pptlabs

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

// Reader is the interface for presentation readers.
type Reader interface {
	Read(path string) (*Presentation, error)
	ReadFromReader(r io.ReaderAt, size int64) (*Presentation, error)
}

// ReaderType represents the input format.
type ReaderType string

const (
	ReaderPowerPoint2007 ReaderType = "PowerPoint2007"
)

// NewReader creates a reader for the given format.
func NewReader(format ReaderType) (Reader, error) {
	switch format {
	case ReaderPowerPoint2007:
		return &PPTXReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported reader format: %s", format)
	}
}

// PPTXReader reads PPTX files.
type PPTXReader struct{}

// zipIndex builds a map from file name to *zip.File for O(1) lookups.
func zipIndex(zr *zip.Reader) map[string]*zip.File {
	m := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		m[f.Name] = f
	}
	return m
}

// Read reads a presentation from a file path. The whole file is loaded into
// memory, so the presentation may later be saved over the same path.
func (r *PPTXReader) Read(path string) (*Presentation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return r.ReadFromReader(f, info.Size())
}

// ReadFromReader reads a presentation from an io.ReaderAt. The content is
// copied, so reader need not outlive the call.
func (r *PPTXReader) ReadFromReader(reader io.ReaderAt, size int64) (*Presentation, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid reader size: %d", size)
	}
	if size > int64(maxZipTotalSize) {
		return nil, fmt.Errorf("file size %d exceeds maximum allowed (%d bytes)", size, maxZipTotalSize)
	}

	data, err := io.ReadAll(io.NewSectionReader(reader, 0, size))
	if err != nil {
		return nil, fmt.Errorf("failed to read package: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), size)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}

	if len(zr.File) > maxZipEntries {
		return nil, fmt.Errorf("zip archive contains too many entries (%d > %d)", len(zr.File), maxZipEntries)
	}

	pres := &Presentation{
		entries: zr.File,
		slides:  make([]*Slide, 0),
		layout:  NewDocumentLayout(),
	}
	index := zipIndex(zr)

	mainPart, err := r.findMainPart(index)
	if err != nil {
		return nil, err
	}

	slidePaths, err := r.readPresentation(index, mainPart, pres)
	if err != nil {
		return nil, err
	}

	for _, p := range slidePaths {
		slide, err := r.readSlide(index, p)
		if err != nil {
			return nil, fmt.Errorf("failed to read slide %s: %w", p, err)
		}
		pres.slides = append(pres.slides, slide)
	}

	return pres, nil
}

// maxZipEntrySize is the maximum allowed size for a single file extracted from a ZIP.
// This prevents zip bomb attacks. 50 MB is generous for any legitimate PPTX part.
const maxZipEntrySize = 50 << 20 // 50 MB

// maxZipTotalSize is the limit for the size of the package itself.
const maxZipTotalSize = 200 << 20 // 200 MB

// maxZipEntries is the maximum number of files allowed in a ZIP archive.
const maxZipEntries = 10000

func readFileFromZip(index map[string]*zip.File, name string) ([]byte, error) {
	f, ok := index[name]
	if !ok {
		return nil, fmt.Errorf("file not found in zip: %s", name)
	}
	if f.UncompressedSize64 > maxZipEntrySize {
		return nil, fmt.Errorf("file %s exceeds maximum allowed size (%d bytes)", name, maxZipEntrySize)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s in zip: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, int64(maxZipEntrySize)+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from zip: %w", name, err)
	}
	if int64(len(data)) > int64(maxZipEntrySize) {
		return nil, fmt.Errorf("file %s actual size exceeds maximum allowed size", name)
	}
	return data, nil
}

// --- Relationship reading ---

const (
	relTypeOfficeDoc = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeSlide     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
)

type xmlRelForRead struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type xmlRelsForRead struct {
	XMLName       xml.Name        `xml:"Relationships"`
	Relationships []xmlRelForRead `xml:"Relationship"`
}

// relsPathFor returns the relationships part that belongs to part.
func relsPathFor(part string) string {
	return path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
}

// resolveTarget resolves a relationship target against its source part.
func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Join(path.Dir(source), target)
}

func (r *PPTXReader) readRelationships(index map[string]*zip.File, relsPath string) ([]xmlRelForRead, error) {
	data, err := readFileFromZip(index, relsPath)
	if err != nil {
		return nil, nil // relationships file may not exist
	}

	var rels xmlRelsForRead
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships %s: %w", relsPath, err)
	}
	return rels.Relationships, nil
}

// findMainPart locates ppt/presentation.xml through the package relationships.
func (r *PPTXReader) findMainPart(index map[string]*zip.File) (string, error) {
	rels, err := r.readRelationships(index, "_rels/.rels")
	if err != nil {
		return "", err
	}
	for _, rel := range rels {
		if rel.Type == relTypeOfficeDoc {
			return resolveTarget("", rel.Target), nil
		}
	}
	if _, ok := index["ppt/presentation.xml"]; ok {
		return "ppt/presentation.xml", nil
	}
	return "", fmt.Errorf("package has no presentation part")
}

// --- Presentation part ---

type xmlSldIDForRead struct {
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

type xmlSldSzForRead struct {
	CX   int64  `xml:"cx,attr"`
	CY   int64  `xml:"cy,attr"`
	Type string `xml:"type,attr"`
}

type xmlPresentationForRead struct {
	XMLName  xml.Name          `xml:"presentation"`
	SlideIDs []xmlSldIDForRead `xml:"sldIdLst>sldId"`
	SlideSz  *xmlSldSzForRead  `xml:"sldSz"`
}

// readPresentation reads the slide size and returns the slide part names in
// presentation order.
func (r *PPTXReader) readPresentation(index map[string]*zip.File, mainPart string, pres *Presentation) ([]string, error) {
	data, err := readFileFromZip(index, mainPart)
	if err != nil {
		return nil, err
	}

	var xp xmlPresentationForRead
	if err := xml.Unmarshal(data, &xp); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", mainPart, err)
	}
	if xp.SlideSz != nil {
		pres.layout.setSize(xp.SlideSz.CX, xp.SlideSz.CY, xp.SlideSz.Type)
	}

	rels, err := r.readRelationships(index, relsPathFor(mainPart))
	if err != nil {
		return nil, err
	}
	targets := make(map[string]string, len(rels))
	for _, rel := range rels {
		if rel.Type == relTypeSlide && rel.TargetMode != "External" {
			targets[rel.ID] = resolveTarget(mainPart, rel.Target)
		}
	}

	paths := make([]string, 0, len(xp.SlideIDs))
	for _, id := range xp.SlideIDs {
		target, ok := targets[id.RID]
		if !ok {
			continue
		}
		paths = append(paths, target)
	}
	return paths, nil
}
