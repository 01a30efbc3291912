package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fchimpan/gh-kusa-painter/internal/glyph"
	"github.com/fchimpan/gh-kusa-painter/internal/grid"
	"github.com/fchimpan/gh-kusa-painter/internal/pattern"
	"github.com/fchimpan/gh-kusa-painter/internal/procgen"
)

const defaultIntensity = 3

func newTextCmd(a *app) *cobra.Command {
	var (
		out         outputFlags
		start       int
		effects     string
		strict      bool
		lineSpacing int
	)
	c := &cobra.Command{
		Use:   "text TEXT [TEXT...]",
		Short: "Render text in the 5x7 pixel font",
		Long: "Render text in the 5x7 pixel font. Several arguments are placed one after\n" +
			"another along the year, --line-spacing weeks apart.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := grid.New(a.year)
			fx, err := pattern.ParseEffects(effects)
			if err != nil {
				return err
			}
			var (
				points   []pattern.Point
				warnings []string
			)
			if len(args) == 1 {
				points, warnings, err = glyph.Text(g, args[0], glyph.TextOptions{
					StartWeek: start,
					Intensity: a.intensity,
					Effects:   fx,
					Strict:    strict,
				})
				if err != nil {
					return err
				}
			} else {
				if strict {
					need := 0
					for _, l := range args {
						need += glyph.WeeksNeeded(l) + lineSpacing
					}
					need -= lineSpacing
					if avail := g.AvailableSpace(start).Weeks; need > avail {
						return &glyph.TextTooLongError{Text: strings.Join(args, " "), Required: need, Available: avail, StartWeek: start}
					}
				}
				points, warnings = glyph.MultiLine(g, args, start, lineSpacing, a.intensity)
				points = fx.Apply(points, g.IsValidCell)
			}
			a.warnAll("text", warnings)
			return a.emit(out, points)
		},
	}
	c.Flags().IntVarP(&start, "start", "s", 0, "first week column")
	c.Flags().IntVarP(&a.intensity, "intensity", "i", defaultIntensity, "commits per lit cell")
	c.Flags().StringVarP(&effects, "effects", "e", "", "comma separated effects: gradient, alternating, shadow")
	c.Flags().BoolVar(&strict, "strict", false, "fail when the text does not fit instead of clipping it")
	c.Flags().IntVar(&lineSpacing, "line-spacing", 2, "empty weeks between texts")
	out.register(c)
	return c
}

func newShapeCmd(a *app) *cobra.Command {
	var (
		out   outputFlags
		start int
		list  bool
	)
	c := &cobra.Command{
		Use:   "shape NAME",
		Short: "Draw a predefined shape (" + strings.Join(glyph.ShapeNames(), ", ") + ")",
		Args: func(cmd *cobra.Command, args []string) error {
			if list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return listShapes(a.deps.Stdout)
			}
			points, err := glyph.Shape(grid.New(a.year), args[0], start, a.intensity)
			if err != nil {
				return err
			}
			return a.emit(out, points)
		},
	}
	c.Flags().IntVarP(&start, "start", "s", 0, "first week column")
	c.Flags().IntVarP(&a.intensity, "intensity", "i", defaultIntensity, "commits per lit cell")
	c.Flags().BoolVar(&list, "list", false, "list the available shapes")
	out.register(c)
	return c
}

func listShapes(w io.Writer) error {
	for _, name := range glyph.ShapeNames() {
		if _, err := fmt.Fprintf(w, "%-10s %d weeks\n", name, glyph.ShapeWidth(name)); err != nil {
			return err
		}
	}
	return nil
}

func newEffectCmd(a *app) *cobra.Command {
	var (
		out  outputFlags
		opts procgen.Options
	)
	c := &cobra.Command{
		Use:       "effect NAME",
		Short:     "Generate a procedural pattern (" + strings.Join(procgen.Names, ", ") + ")",
		Args:      cobra.ExactArgs(1),
		ValidArgs: procgen.Names,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.ToLower(args[0])
			merged := procgen.Defaults(name)
			flags := cmd.Flags()
			if flags.Changed("start") {
				merged.StartWeek = opts.StartWeek
			}
			if flags.Changed("end") {
				merged.EndWeek = opts.EndWeek
			}
			if flags.Changed("length") {
				merged.Length = opts.Length
			}
			if flags.Changed("amplitude") {
				merged.Amplitude = opts.Amplitude
			}
			if flags.Changed("wavelength") {
				merged.Wavelength = opts.Wavelength
			}
			if flags.Changed("count") {
				merged.Count = opts.Count
			}
			if flags.Changed("intensity") || a.cfg.Pattern.Intensity != nil {
				merged.Intensity = a.intensity
			}
			merged.Seed = opts.Seed
			if !flags.Changed("seed") {
				merged.Seed = uint64(a.deps.Now().UnixNano())
			}
			points, err := procgen.Generate(grid.New(a.year), name, merged)
			if err != nil {
				return err
			}
			a.log.Debug("effect generated", "name", name, "points", len(points), "seed", merged.Seed)
			return a.emit(out, points)
		},
	}
	f := c.Flags()
	f.IntVarP(&opts.StartWeek, "start", "s", 0, "first week column")
	f.IntVar(&opts.EndWeek, "end", 0, "last week column (checkerboard)")
	f.IntVar(&opts.Length, "length", 0, "diagonal length")
	f.Float64Var(&opts.Amplitude, "amplitude", 0, "wave amplitude")
	f.Float64Var(&opts.Wavelength, "wavelength", 0, "wave length in weeks")
	f.IntVar(&opts.Count, "count", 0, "number of random cells")
	f.Uint64Var(&opts.Seed, "seed", 0, "random seed (default: time based)")
	f.IntVarP(&a.intensity, "intensity", "i", defaultIntensity, "commits per lit cell (random: maximum)")
	out.register(c)
	return c
}

func newCellCmd(a *app) *cobra.Command {
	var (
		out     outputFlags
		week    int
		day     int
		commits int
	)
	c := &cobra.Command{
		Use:   "cell",
		Short: "Add a single day, or a whole week with --day -1",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := grid.New(a.year)
			days := []int{day}
			if day == -1 {
				days = []int{0, 1, 2, 3, 4, 5, 6}
			}
			var points []pattern.Point
			for _, d := range days {
				p, err := pattern.NewPoint(week, d, commits)
				if err != nil {
					return err
				}
				if !g.IsValidCell(p.Week, p.Day) {
					if day == -1 {
						continue
					}
					return fmt.Errorf("week %d day %d is not a day of %d", week, d, a.year)
				}
				points = append(points, p)
			}
			if len(points) == 0 {
				return fmt.Errorf("week %d has no days in %d", week, a.year)
			}
			return a.emit(out, points)
		},
	}
	c.Flags().IntVarP(&week, "week", "w", 0, "week column")
	c.Flags().IntVarP(&day, "day", "d", 0, "weekday row, 0=Sunday..6=Saturday, -1 for the whole week")
	c.Flags().IntVarP(&commits, "commits", "c", 1, "number of commits")
	_ = c.MarkFlagRequired("week")
	out.register(c)
	return c
}

func newMergeCmd(a *app) *cobra.Command {
	var out outputFlags
	c := &cobra.Command{
		Use:   "merge FILE [FILE...]",
		Short: "Merge pattern files; shared days keep the highest commit count",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sets := make([][]pattern.Point, 0, len(args))
			for _, path := range args {
				points, warnings, err := pattern.Load(path)
				if err != nil {
					return err
				}
				a.warnAll(path, warnings)
				sets = append(sets, points)
			}
			return a.emit(out, pattern.Merge(sets...))
		},
	}
	out.register(c)
	return c
}
