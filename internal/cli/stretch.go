package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/VantageDataChat/pptlabs"
	"github.com/VantageDataChat/pptlabs/resize"
)

// stretchOpts holds the flags shared by the four stretch subcommands.
type stretchOpts struct {
	slide  int      // 1-based slide number
	shapes []string // shape names or #ids, in selection order
	ref    string   // reference mode override
	output string   // output file (default: overwrite input)
	dryRun bool     // print the plan without writing
}

// stretchCommand creates the stretch command with one subcommand per direction.
func (c *CLI) stretchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stretch",
		Short: "Align one edge of the selected shapes to a reference shape",
		Long: `Align one edge of the selected shapes to a reference shape.

The reference shape is the first shape given with --shape (first-selected
mode) or the shape whose edge lies furthest in the stretch direction
(outermost mode). Every other shape keeps its facing edge and moves the
stretched edge onto the reference edge. A shape lying entirely beyond the
reference edge is stretched from its opposite side instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			_, err := resize.ParseDirection(args[0])
			return err
		},
	}

	for _, d := range []resize.Direction{resize.Left, resize.Right, resize.Top, resize.Bottom} {
		cmd.AddCommand(c.stretchDirectionCommand(d))
	}
	return cmd
}

func (c *CLI) stretchDirectionCommand(d resize.Direction) *cobra.Command {
	opts := stretchOpts{slide: 1}

	cmd := &cobra.Command{
		Use:   d.String() + " [file.pptx]",
		Short: fmt.Sprintf("Align the %s edges of the selected shapes", d),
		Example: fmt.Sprintf(`  pptlabs stretch %s deck.pptx --slide 2 --shape "Title 1" --shape "#7"
  pptlabs stretch %s deck.pptx --ref outermost --dry-run`, d, d),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStretch(cmd.Context(), cmd.OutOrStdout(), args[0], d, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.slide, "slide", "s", opts.slide, "slide number (1-based)")
	cmd.Flags().StringArrayVar(&opts.shapes, "shape", nil, "shape name or #id, repeatable (default: every shape with geometry)")
	cmd.Flags().StringVar(&opts.ref, "ref", "", "reference mode: first-selected, outermost (default: from settings)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: overwrite input)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the changes without writing")

	return cmd
}

// runStretch opens input, stretches the selection on one slide and saves.
func (c *CLI) runStretch(ctx context.Context, w io.Writer, input string, d resize.Direction, opts stretchOpts) error {
	logger := loggerFromContext(ctx)

	refType, err := c.refType(opts.ref)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	pres, err := pptlabs.Open(input)
	if err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}
	defer pres.Close()

	slide, err := slideByNumber(pres, opts.slide)
	if err != nil {
		return err
	}
	sel, err := slide.Select(opts.shapes...)
	if err != nil {
		return fmt.Errorf("slide %d: %w", opts.slide, err)
	}
	logger.Debug("Loaded presentation", "file", input, "slides", pres.GetSlideCount(), "part", slide.GetPath(), "selected", len(sel))
	for _, sh := range sel {
		if r := sh.GetRotation(); r != 0 {
			printWarning(w, "%s is rotated %s°: its unrotated box is stretched", sh, formatDegrees(r))
		}
	}

	lab := &resize.Lab{ReferenceType: refType}
	geom := sel.Geometry()
	plan, ok := lab.Plan(geom, d)
	if !ok {
		printWarning(w, "Nothing to stretch: select at least two shapes (%d selected)", len(sel))
		return nil
	}
	logger.Debug("Reference shape", "mode", refType, "shape", sel[plan.ReferenceIndex], "edge", plan.ReferenceEdge)

	printPlan(w, sel, plan)
	if opts.dryRun {
		printInfo(w, "Dry run: %s not written", input)
		return nil
	}

	plan.Apply(geom)
	if err := pres.Validate(); err != nil {
		logger.Warn("Negative extents will be written as zero", "err", err)
	}

	output := opts.output
	if output == "" {
		if !pres.IsModified() {
			printInfo(w, "All %s edges already aligned", d)
			return nil
		}
		output = input
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := pres.Save(output); err != nil {
		return fmt.Errorf("save %s: %w", output, err)
	}
	prog.done("Saved", "file", filepath.Base(output))

	printSuccess(w, "Stretched %s edges of %d shapes", d, movedShapes(sel))
	printFile(w, output)
	return nil
}

// refType resolves the reference mode from the flag or the settings file.
func (c *CLI) refType(flag string) (resize.RefType, error) {
	if flag != "" {
		return resize.ParseRefType(flag)
	}
	cfg, _, err := c.loadConfig()
	if err != nil {
		return 0, err
	}
	return cfg.RefType()
}

// printPlan lists the reference shape and what happens to every other shape.
func printPlan(w io.Writer, sel pptlabs.Selection, plan resize.Plan) {
	edge := pptlabs.UnitPoint.Format(int64(plan.ReferenceEdge))
	printTitle(w, "Reference %s (%s edge at %spt)", sel[plan.ReferenceIndex], plan.Direction, edge)
	for _, st := range plan.Steps {
		sh := sel[st.Index]
		switch {
		case st.Aligned:
			printDetail(w, "%s: already aligned", sh)
		case st.Opposite:
			printDetail(w, "%s: %s edge to %spt (opposite stretch)", sh, st.Action, edge)
		default:
			printDetail(w, "%s: %s edge to %spt", sh, st.Action, edge)
		}
	}
}

// movedShapes counts the selected shapes whose geometry changed.
func movedShapes(sel pptlabs.Selection) int {
	n := 0
	for _, sh := range sel {
		if sh.IsModified() {
			n++
		}
	}
	return n
}

func formatDegrees(deg float64) string {
	return strconv.FormatFloat(deg, 'f', -1, 64)
}
