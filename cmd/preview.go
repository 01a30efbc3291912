package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fchimpan/gh-kusa-painter/internal/grid"
	"github.com/fchimpan/gh-kusa-painter/internal/mapping"
	"github.com/fchimpan/gh-kusa-painter/internal/render"
)

func newPreviewCmd(a *app) *cobra.Command {
	var (
		name        string
		pngPath     string
		interactive bool
		onCalendar  bool
	)
	c := &cobra.Command{
		Use:   "preview [FILE]",
		Short: "Show a pattern on the year's contribution graph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := render.ParseMode(a.mode)
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			points, err := a.loadPoints(cmd, path, name)
			if err != nil {
				return err
			}
			g := grid.New(a.year)
			p := mapping.FromPoints(g, points, a.deps.Now())
			if onCalendar {
				_, cal, err := loadCalendar(cmd.Context(), a, a.year, false, uint64(a.year))
				if err != nil {
					return a.githubErr(err)
				}
				p = mapping.Overlay(mapping.FromCalendar(g, cal), g, points, a.deps.Now())
			}

			if pngPath != "" {
				if err := writePNGFile(pngPath, p); err != nil {
					return err
				}
				fmt.Fprintf(a.deps.Stderr, "exported preview to %s\n", pngPath)
			}
			if interactive {
				if a.deps.RunPreview == nil {
					return fmt.Errorf("deps.RunPreview is nil")
				}
				_, err := a.deps.RunPreview(previewTitle(path, name), p, false)
				return err
			}
			return a.printPreview(p, mode)
		},
	}
	c.Flags().StringVarP(&name, "pattern", "p", "", "use a saved pattern instead of a file")
	c.Flags().StringVarP(&a.mode, "mode", "m", string(render.ModeASCII), "ascii, emoji or color")
	c.Flags().StringVar(&pngPath, "png", "", "also export the preview as a PNG image")
	c.Flags().BoolVarP(&interactive, "interactive", "i", false, "open the full-screen preview")
	c.Flags().BoolVar(&onCalendar, "calendar", false, "draw the pattern over the year's existing contributions")
	return c
}

func previewTitle(path, name string) string {
	if name != "" {
		return name
	}
	return path
}

func (a *app) printPreview(p mapping.Preview, mode render.Mode) error {
	width := 0
	if f, ok := a.deps.Stdout.(*os.File); ok {
		width = render.TerminalWidth(f)
	}
	if err := render.Grid(a.deps.Stdout, p, render.Options{
		Mode:     mode,
		Title:    "Contribution graph preview",
		MaxWidth: width,
		Legend:   true,
	}); err != nil {
		return err
	}
	return render.WriteSummary(a.deps.Stdout, render.Summarize(p))
}

func writePNGFile(path string, p mapping.Preview) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return render.WritePNG(f, p)
}
