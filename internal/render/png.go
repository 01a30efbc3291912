package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/fchimpan/gh-kusa-painter/internal/mapping"
)

// Layout of the exported image, in pixels.
const (
	pngCell    = 11
	pngGap     = 3
	pngLeft    = 36
	pngTop     = 24
	pngPadding = 8
)

var (
	pngBackground = color.RGBA{0xff, 0xff, 0xff, 0xff}
	pngText       = color.RGBA{0x57, 0x60, 0x6a, 0xff}
	pngFuture     = color.RGBA{0xf8, 0x51, 0x49, 0xff}
	pngLevels     = [5]color.RGBA{
		{0xeb, 0xed, 0xf0, 0xff},
		{0x9b, 0xe9, 0xa8, 0xff},
		{0x40, 0xc4, 0x63, 0xff},
		{0x30, 0xa1, 0x4e, 0xff},
		{0x21, 0x6e, 0x39, 0xff},
	}
)

// Image draws p the way GitHub's profile graph looks: one square per day,
// month names on top and Mon/Wed/Fri on the left. Padding cells stay blank.
func Image(p mapping.Preview) *image.RGBA {
	step := pngCell + pngGap
	w := pngLeft + p.Cols*step + pngPadding
	h := pngTop + p.Rows*step + pngPadding
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(pngBackground), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	label := func(x, y int, s string) {
		d := font.Drawer{Dst: img, Src: image.NewUniform(pngText), Face: face, Dot: fixed.P(x, y)}
		d.DrawString(s)
	}
	for _, m := range p.Months {
		label(pngLeft+m.Week*step, pngTop-8, m.Month.String()[:3])
	}
	for _, r := range []int{1, 3, 5} {
		label(2, pngTop+r*step+pngCell-1, dayLabel(r))
	}

	for r := range p.Rows {
		for c := range p.Cols {
			cell := p.Cells[r][c]
			if !cell.Valid {
				continue
			}
			fill := pngLevels[cell.Category]
			if cell.Future && cell.Count > 0 {
				fill = pngFuture
			}
			x0, y0 := pngLeft+c*step, pngTop+r*step
			draw.Draw(img, image.Rect(x0, y0, x0+pngCell, y0+pngCell), image.NewUniform(fill), image.Point{}, draw.Src)
		}
	}
	return img
}

// WritePNG encodes Image(p) to w.
func WritePNG(w io.Writer, p mapping.Preview) error {
	return png.Encode(w, Image(p))
}
