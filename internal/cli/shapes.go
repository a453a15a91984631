package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/VantageDataChat/pptlabs"
)

// shapesCommand creates the shapes command for listing slide geometry.
func (c *CLI) shapesCommand() *cobra.Command {
	var (
		slide int
		unit  string
	)

	cmd := &cobra.Command{
		Use:   "shapes [file.pptx]",
		Short: "List the shapes of a slide with their position and size",
		Long: `List the top-level shapes of a slide in document order.

Shapes without an explicit position (placeholders that inherit their
geometry from the layout) are listed with "-" and cannot be stretched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := pptlabs.ParseUnit(unit)
			if err != nil {
				return err
			}
			pres, err := pptlabs.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer pres.Close()

			s, err := slideByNumber(pres, slide)
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("Listing shapes", "file", args[0], "slide", slide, "count", s.GetShapeCount())
			return printShapes(cmd.OutOrStdout(), pres.GetLayout(), s, slide, u)
		},
	}

	cmd.Flags().IntVarP(&slide, "slide", "s", 1, "slide number (1-based)")
	cmd.Flags().StringVarP(&unit, "unit", "u", string(pptlabs.UnitPoint), "unit: emu, pt, in, cm, mm")

	return cmd
}

// printShapes writes one row per shape: id, name, kind and geometry. The
// last column notes rotation, flips and shapes reaching past the slide.
func printShapes(w io.Writer, layout *pptlabs.DocumentLayout, s *pptlabs.Slide, number int, u pptlabs.Unit) error {
	title := fmt.Sprintf("Slide %d", number)
	if s.GetName() != "" {
		title += " (" + s.GetName() + ")"
	}
	printTitle(w, "%s: %d shapes", title, s.GetShapeCount())

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tKIND\tLEFT\tTOP\tWIDTH\tHEIGHT\t")
	for _, sh := range s.GetShapes() {
		geom := []string{"-", "-", "-", "-", ""}
		if sh.HasGeometry() {
			geom = []string{
				u.Format(sh.GetOffsetX()),
				u.Format(sh.GetOffsetY()),
				u.Format(sh.GetWidth()),
				u.Format(sh.GetHeight()),
				shapeNotes(layout, sh),
			}
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", sh.GetID(), sh.GetName(), sh.GetKind(), strings.Join(geom, "\t"))
	}
	return tw.Flush()
}

func shapeNotes(layout *pptlabs.DocumentLayout, sh *pptlabs.Shape) string {
	var notes []string
	if r := sh.GetRotation(); r != 0 {
		notes = append(notes, "rot "+formatDegrees(r)+"°")
	}
	if sh.GetFlipHorizontal() {
		notes = append(notes, "flipH")
	}
	if sh.GetFlipVertical() {
		notes = append(notes, "flipV")
	}
	if !layout.Contains(sh) {
		notes = append(notes, styleWarning.Render("off slide"))
	}
	return strings.Join(notes, " ")
}

// slideByNumber returns the slide with the given 1-based number.
func slideByNumber(pres *pptlabs.Presentation, number int) (*pptlabs.Slide, error) {
	s, err := pres.GetSlide(number - 1)
	if err != nil {
		return nil, fmt.Errorf("slide %d of %d: %w", number, pres.GetSlideCount(), err)
	}
	return s, nil
}
