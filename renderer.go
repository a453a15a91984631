package pptlabs

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// RenderOptions configures slide preview rendering.
type RenderOptions struct {
	// Width is the output image width in pixels. Height is calculated from slide aspect ratio.
	// Default: 960
	Width int
	// BackgroundColor overrides the white canvas.
	BackgroundColor *color.RGBA
	// ShowNames draws each shape's name in its top-left corner.
	ShowNames bool
	// Fonts and FontName select a TrueType face for the names. When either
	// is unset or the font is not found, basicfont.Face7x13 is used.
	Fonts    *FontCache
	FontName string
	// FontSize is the label size in pixels. Default: 12
	FontSize float64
}

// DefaultRenderOptions returns default rendering options.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Width:     960,
		ShowNames: true,
		FontSize:  12,
	}
}

// shapePalette cycles outline colours so neighbouring boxes stay distinguishable.
var shapePalette = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
}

// SlideToImage renders the shape boxes of a single slide. Rotation is not
// applied; each box is drawn as stored.
func (p *Presentation) SlideToImage(slideIndex int, opts *RenderOptions) (image.Image, error) {
	slide, err := p.GetSlide(slideIndex)
	if err != nil {
		return nil, err
	}
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	width := opts.Width
	if width <= 0 {
		width = 960
	}

	slideW := float64(p.layout.CX)
	slideH := float64(p.layout.CY)
	imgW := width
	imgH := int(float64(imgW) * slideH / slideW)

	img := image.NewRGBA(image.Rect(0, 0, imgW, imgH))
	bgColor := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if opts.BackgroundColor != nil {
		bgColor = *opts.BackgroundColor
	}
	draw.Draw(img, img.Bounds(), &image.Uniform{bgColor}, image.Point{}, draw.Src)

	r := &renderer{
		img:    img,
		scaleX: float64(imgW) / slideW,
		scaleY: float64(imgH) / slideH,
		face:   opts.labelFace(),
	}
	for i, sh := range slide.shapes {
		if !sh.HasGeometry() {
			continue
		}
		r.renderBox(sh, shapePalette[i%len(shapePalette)], opts.ShowNames)
	}
	return img, nil
}

func (o *RenderOptions) labelFace() font.Face {
	if o.Fonts != nil && o.FontName != "" {
		size := o.FontSize
		if size <= 0 {
			size = 12
		}
		if face := o.Fonts.Face(o.FontName, size); face != nil {
			return face
		}
	}
	return basicfont.Face7x13
}

// SaveSlideAsImage renders a slide and saves it as PNG.
func (p *Presentation) SaveSlideAsImage(slideIndex int, path string, opts *RenderOptions) error {
	img, err := p.SlideToImage(slideIndex, opts)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}

// ErrImagePattern is returned for file name patterns that do not take
// exactly one slide number.
var ErrImagePattern = errors.New("image name pattern needs exactly one integer verb such as %d")

// SaveSlidesAsImages renders every slide to PNG. pattern is a format string
// receiving the 1-based slide number, e.g. "out/slide%02d.png". A literal
// percent sign is written as %%.
func (p *Presentation) SaveSlidesAsImages(pattern string, opts *RenderOptions) ([]string, error) {
	if err := checkImagePattern(pattern); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(p.slides))
	for i := range p.slides {
		path := fmt.Sprintf(pattern, i+1)
		if err := p.SaveSlideAsImage(i, path, opts); err != nil {
			return paths, fmt.Errorf("slide %d: %w", i+1, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// checkImagePattern accepts patterns with one integer verb (flags and width
// allowed) and any number of %% escapes.
func checkImagePattern(pattern string) error {
	verbs := 0
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' {
			continue
		}
		i++
		if i < len(pattern) && pattern[i] == '%' {
			continue
		}
		for i < len(pattern) && strings.IndexByte("+-# 0123456789", pattern[i]) >= 0 {
			i++
		}
		if i >= len(pattern) || strings.IndexByte("dxXo", pattern[i]) < 0 {
			return fmt.Errorf("%w: %q", ErrImagePattern, pattern)
		}
		verbs++
	}
	if verbs != 1 {
		return fmt.Errorf("%w: %q", ErrImagePattern, pattern)
	}
	return nil
}

// --- renderer ---

type renderer struct {
	img    *image.RGBA
	scaleX float64
	scaleY float64
	face   font.Face
}

func (r *renderer) emuToPixelX(emu int64) int {
	return int(float64(emu) * r.scaleX)
}

func (r *renderer) emuToPixelY(emu int64) int {
	return int(float64(emu) * r.scaleY)
}

func (r *renderer) renderBox(s *Shape, c color.RGBA, showName bool) {
	x := r.emuToPixelX(s.offsetX)
	y := r.emuToPixelY(s.offsetY)
	w := r.emuToPixelX(s.width)
	h := r.emuToPixelY(s.height)
	rect := image.Rect(x, y, x+w, y+h)

	fill := color.RGBA{R: c.R / 4, G: c.G / 4, B: c.B / 4, A: 0x40}
	draw.Draw(r.img, rect, &image.Uniform{fill}, image.Point{}, draw.Over)
	r.drawRect(rect, c, 2)

	if showName && s.name != "" {
		ascent := r.face.Metrics().Ascent.Ceil()
		r.drawString(s.name, r.face, c, rect.Min.X+3, rect.Min.Y+2+ascent)
	}
}

// drawRect draws the outline of rect with the given stroke width. Empty
// rectangles still get a line so zero-width shapes stay visible.
func (r *renderer) drawRect(rect image.Rectangle, c color.RGBA, width int) {
	u := &image.Uniform{c}
	lines := []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X+width, rect.Min.Y+width),
		image.Rect(rect.Min.X, rect.Max.Y, rect.Max.X+width, rect.Max.Y+width),
		image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+width, rect.Max.Y+width),
		image.Rect(rect.Max.X, rect.Min.Y, rect.Max.X+width, rect.Max.Y+width),
	}
	for _, l := range lines {
		draw.Draw(r.img, l, u, image.Point{}, draw.Src)
	}
}

func (r *renderer) drawString(text string, face font.Face, c color.RGBA, x, y int) {
	d := &font.Drawer{
		Dst:  r.img,
		Src:  &image.Uniform{c},
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
