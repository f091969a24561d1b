/*
Package composite overlays the rasters of two shaping backends and stacks
the overlays into one image.

Each row shows the coretext raster tinted green at full opacity, and on top
of it the ot raster tinted red at half opacity. Where both backends put ink,
the result is a dark brown; green or red fringes are where they disagree.
*/
package composite

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'trakcmp'
func tracer() tracing.Trace {
	return tracing.Select("trakcmp")
}

// Tints for the two backends. Ink is drawn in the tint, paper stays white.
var (
	CoreTextTint = color.NRGBA{R: 0, G: 128, B: 0, A: 255}
	OTTint       = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
)

const (
	// OTOpacity is the mask value the ot raster is pasted with.
	OTOpacity = 127
	// LabelMargin is the distance of a row label from the row's top-left.
	LabelMargin = 10
)

// Pair holds the rasters of both backends for one point size.
type Pair struct {
	OT       image.Image
	CoreText image.Image
}

// Size returns the bounding size of both rasters.
func (p Pair) Size() image.Point {
	a, b := p.OT.Bounds().Size(), p.CoreText.Bounds().Size()
	return image.Pt(max(a.X, b.X), max(a.Y, b.Y))
}

// Colorize maps src to a ramp from dark (black ink) to white (paper).
// Translucent pixels are flattened onto white first. The result is opaque
// and has its origin at (0,0).
func Colorize(src image.Image, dark color.Color) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	dr, dg, db, _ := dark.RGBA()
	ramp := func(d uint32, y uint32) uint8 {
		// d and result in 8 bit, y in 16 bit
		d >>= 8
		return uint8((d*(0xffff-y) + 0xff*y) / 0xffff)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := src.At(x, y).RGBA()
			paper := 0xffff - a
			lum := luma(r+paper, g+paper, bl+paper)
			dst.SetNRGBA(x-b.Min.X, y-b.Min.Y, color.NRGBA{
				R: ramp(dr, lum),
				G: ramp(dg, lum),
				B: ramp(db, lum),
				A: 0xff,
			})
		}
	}
	return dst
}

// luma uses the same weights as color.GrayModel.
func luma(r, g, b uint32) uint32 {
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 16
	if y > 0xffff {
		y = 0xffff
	}
	return y
}

// Row builds the overlay for one point size. The ot raster is shifted right
// by offset pixels, and the row is widened by the same amount. label is
// drawn in black near the top-left corner.
func Row(p Pair, offset int, label string) *image.NRGBA {
	size := p.Size()
	size.X += max(offset, 0)
	row := image.NewNRGBA(image.Rectangle{Max: size})

	ct := Colorize(p.CoreText, CoreTextTint)
	draw.Draw(row, ct.Bounds(), ct, image.Point{}, draw.Src)

	ot := Colorize(p.OT, OTTint)
	r := ot.Bounds().Add(image.Pt(offset, 0))
	mask := image.NewUniform(color.Alpha{A: OTOpacity})
	draw.DrawMask(row, r, ot, image.Point{}, mask, image.Point{}, draw.Over)

	drawLabel(row, label)
	return row
}

func drawLabel(dst draw.Image, label string) {
	if label == "" {
		return
	}
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: face,
	}
	d.Dot = fixed.P(LabelMargin, LabelMargin+face.Metrics().Ascent.Ceil())
	d.DrawString(label)
}

// CanvasWidth is the width of the composite: the widest single raster, plus
// the largest offset if offsets is non-nil.
func CanvasWidth(pairs []Pair, offsets []int) int {
	w := 0
	for _, p := range pairs {
		w = max(w, p.OT.Bounds().Dx(), p.CoreText.Bounds().Dx())
	}
	maxOffset := 0
	for _, off := range offsets {
		maxOffset = max(maxOffset, off)
	}
	return w + maxOffset
}

// Stack pastes rows top to bottom onto a canvas of the given width.
// Rows wider than the canvas are clipped.
func Stack(rows []*image.NRGBA, width int) *image.NRGBA {
	height := 0
	for _, row := range rows {
		height += row.Bounds().Dy()
	}
	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))
	y := 0
	for _, row := range rows {
		r := row.Bounds().Sub(row.Bounds().Min).Add(image.Pt(0, y))
		draw.Draw(canvas, r, row, row.Bounds().Min, draw.Src)
		y += row.Bounds().Dy()
	}
	return canvas
}

// Compose builds the complete composite: one row per pair, in order,
// labeled with the corresponding entry of labels. If offsets is nil, the
// rasters are not shifted. labels and offsets (if given) must have the same
// length as pairs.
func Compose(pairs []Pair, labels []string, offsets []int) (*image.NRGBA, error) {
	if len(labels) != len(pairs) {
		return nil, fmt.Errorf("%d raster pairs but %d labels", len(pairs), len(labels))
	}
	if offsets != nil && len(offsets) != len(pairs) {
		return nil, fmt.Errorf("%d raster pairs but %d offsets", len(pairs), len(offsets))
	}
	rows := make([]*image.NRGBA, len(pairs))
	for i, p := range pairs {
		if p.OT == nil || p.CoreText == nil {
			return nil, fmt.Errorf("raster pair #%d is incomplete", i)
		}
		off := 0
		if offsets != nil {
			off = offsets[i]
		}
		rows[i] = Row(p, off, labels[i])
		tracer().Debugf("row %d (%s): %v, offset %d", i, labels[i], rows[i].Bounds().Size(), off)
	}
	width := CanvasWidth(pairs, offsets)
	canvas := Stack(rows, width)
	tracer().Infof("composite is %v", canvas.Bounds().Size())
	return canvas, nil
}
