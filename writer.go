package pptlabs

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Writer is the interface for presentation writers.
type Writer interface {
	Save(path string) error
	WriteTo(w io.Writer) error
}

// WriterType represents the output format.
type WriterType string

const (
	WriterPowerPoint2007 WriterType = "PowerPoint2007"
)

// NewWriter creates a writer for the given format.
func NewWriter(p *Presentation, format WriterType) (Writer, error) {
	switch format {
	case WriterPowerPoint2007:
		return &PPTXWriter{presentation: p}, nil
	default:
		return nil, fmt.Errorf("unsupported writer format: %s", format)
	}
}

// PPTXWriter writes presentations in PPTX format.
type PPTXWriter struct {
	presentation *Presentation
}

// Save writes the presentation to a file. The file is first written next to
// the destination and then renamed over it, so a failed write never leaves a
// truncated document behind. An existing destination keeps its permissions;
// new files get 0644.
func (w *PPTXWriter) Save(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.CreateTemp(dir, ".pptlabs-*.pptx")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmp := f.Name()

	writeErr := w.WriteTo(f)
	closeErr := f.Close()

	if writeErr != nil || closeErr != nil {
		os.Remove(tmp)
		if writeErr != nil {
			return writeErr
		}
		return fmt.Errorf("failed to close file: %w", closeErr)
	}
	mode := os.FileMode(0644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.Chmod(tmp, mode); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// WriteTo writes the presentation to a writer. Parts are emitted in their
// original order; untouched parts are copied without recompression.
func (w *PPTXWriter) WriteTo(writer io.Writer) error {
	if w.presentation == nil {
		return fmt.Errorf("presentation is nil")
	}

	dirty := make(map[string]*Slide)
	for _, slide := range w.presentation.slides {
		if slide.IsModified() {
			dirty[slide.path] = slide
		}
	}

	zw := zip.NewWriter(writer)

	for _, f := range w.presentation.entries {
		slide, ok := dirty[f.Name]
		if !ok {
			if err := zw.Copy(f); err != nil {
				return fmt.Errorf("failed to copy %s: %w", f.Name, err)
			}
			continue
		}

		data := patchSlideXML(slide)
		if err := writeRawXMLToZip(zw, f.Name, data, f.Modified); err != nil {
			return err
		}
	}

	return zw.Close()
}
