package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VantageDataChat/pptlabs"
)

// previewOpts holds the flags of the preview command.
type previewOpts struct {
	slide    int      // 1-based slide number
	all      bool     // render every slide
	output   string   // PNG path, or a pattern with %d when all is set
	width    int      // image width in pixels
	noNames  bool     // skip shape name labels
	font     string   // TrueType font for labels
	fontDirs []string // extra font directories
}

// previewCommand creates the preview command that renders shape boxes to PNG.
func (c *CLI) previewCommand() *cobra.Command {
	opts := previewOpts{slide: 1, width: 960}

	cmd := &cobra.Command{
		Use:   "preview [file.pptx]",
		Short: "Render the shape boxes of a slide to PNG",
		Long: `Render the shape boxes of a slide to PNG.

Each top-level shape with explicit geometry is drawn as an outlined box with
its name. Use it to check a stretch before and after.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.slide, "slide", "s", opts.slide, "slide number (1-based)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "render every slide")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PNG; with --all a pattern such as out/slide%02d.png (default: <input>.slide<N>.png)")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "image width in pixels")
	cmd.Flags().BoolVar(&opts.noNames, "no-names", false, "do not draw shape names")
	cmd.Flags().StringVar(&opts.font, "font", "", "TrueType font for shape names (default: built-in bitmap font)")
	cmd.Flags().StringArrayVar(&opts.fontDirs, "font-dir", nil, "extra directory to search for fonts, repeatable")

	return cmd
}

func (c *CLI) runPreview(cmd *cobra.Command, input string, opts previewOpts) error {
	logger := loggerFromContext(cmd.Context())
	w := cmd.OutOrStdout()
	prog := newProgress(logger)

	pres, err := pptlabs.Open(input)
	if err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}
	defer pres.Close()

	ropts := pptlabs.DefaultRenderOptions()
	ropts.Width = opts.width
	ropts.ShowNames = !opts.noNames
	if opts.font != "" {
		ropts.Fonts = pptlabs.NewFontCache(opts.fontDirs...)
		ropts.FontName = opts.font
		if ropts.Fonts.Face(opts.font, ropts.FontSize) == nil {
			logger.Warn("Font not found, using built-in font", "font", opts.font)
		}
	}

	base := strings.TrimSuffix(input, filepath.Ext(input))
	if opts.all {
		pattern := allSlidesPattern(base, opts.output)
		logger.Debug("Rendering every slide", "pattern", pattern)
		paths, err := pres.SaveSlidesAsImages(pattern, ropts)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		prog.done("Rendered", "slides", len(paths))
		printSuccess(w, "Rendered %d slides", len(paths))
		for _, p := range paths {
			printFile(w, p)
		}
		return nil
	}

	if _, err := slideByNumber(pres, opts.slide); err != nil {
		return err
	}
	output := opts.output
	if output == "" {
		output = fmt.Sprintf("%s.slide%d.png", base, opts.slide)
	}
	if err := pres.SaveSlideAsImage(opts.slide-1, output, ropts); err != nil {
		return fmt.Errorf("render slide %d: %w", opts.slide, err)
	}
	prog.done("Rendered", "slide", opts.slide, "file", filepath.Base(output))

	printSuccess(w, "Rendered slide %d", opts.slide)
	printFile(w, output)
	return nil
}

// allSlidesPattern returns the file name pattern for --all. Without output
// the input name is used with every % escaped. An output without any % gets
// "-%d" before its extension.
func allSlidesPattern(base, output string) string {
	if output == "" {
		return strings.ReplaceAll(base, "%", "%%") + ".slide%d.png"
	}
	if !strings.Contains(output, "%") {
		ext := filepath.Ext(output)
		return strings.TrimSuffix(output, ext) + "-%d" + ext
	}
	return output
}
