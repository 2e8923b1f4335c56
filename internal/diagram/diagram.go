// Package diagram draws a bitboard as an 8x8 board, as SVG or PNG, for
// inspecting masks and attack sets.
package diagram

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/magicboards/internal/board"
)

// Options controls the look of a diagram.
type Options struct {
	Cell   int          // Side of one square in pixels
	Origin board.Square // Square drawn in OriginColor, NoSquare for none
	Labels bool         // Draw file letters and rank numbers

	Light       color.RGBA
	Dark        color.RGBA
	Mark        color.RGBA // Dot on every set square
	OriginColor color.RGBA
	Background  color.RGBA
	Text        color.RGBA
}

// DefaultOptions returns a 48px board with labels and no origin.
func DefaultOptions() Options {
	return Options{
		Cell:        48,
		Origin:      board.NoSquare,
		Labels:      true,
		Light:       color.RGBA{0xf0, 0xd9, 0xb5, 0xff},
		Dark:        color.RGBA{0xb5, 0x88, 0x63, 0xff},
		Mark:        color.RGBA{0xc0, 0x39, 0x2b, 0xff},
		OriginColor: color.RGBA{0x2e, 0x86, 0xc1, 0xff},
		Background:  color.RGBA{0xff, 0xff, 0xff, 0xff},
		Text:        color.RGBA{0x33, 0x33, 0x33, 0xff},
	}
}

func (o Options) margin() int {
	if o.Labels {
		return o.Cell / 2
	}
	return 0
}

// Size returns the width and height of the diagram in pixels.
func (o Options) Size() int {
	return 8*o.Cell + 2*o.margin()
}

// SquareCenter returns the pixel center of sq.
func (o Options) SquareCenter(sq board.Square) (x, y int) {
	m := o.margin()
	return m + sq.File()*o.Cell + o.Cell/2, m + (7-sq.Rank())*o.Cell + o.Cell/2
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func fill(c color.RGBA) string {
	return fmt.Sprintf(`fill="%s"`, hex(c))
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// SVG writes bb as an SVG document.
func SVG(w io.Writer, bb board.Bitboard, opts Options) error {
	if opts.Cell <= 0 {
		return fmt.Errorf("diagram: invalid cell size %d", opts.Cell)
	}
	ew := &errWriter{w: w}
	writeSVG(ew, bb, opts, opts.Labels)
	return ew.err
}

func writeSVG(w io.Writer, bb board.Bitboard, opts Options, text bool) {
	size, m, cell := opts.Size(), opts.margin(), opts.Cell

	canvas := svg.New(w)
	canvas.Startview(size, size, 0, 0, size, size)
	canvas.Rect(0, 0, size, size, fill(opts.Background))

	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			sq := board.NewSquare(file, rank)
			x, y := m+file*cell, m+(7-rank)*cell

			c := opts.Light
			if (file+rank)%2 == 0 {
				c = opts.Dark
			}
			if sq == opts.Origin {
				c = opts.OriginColor
			}
			canvas.Rect(x, y, cell, cell, fill(c))

			if bb.IsSet(sq) {
				canvas.Circle(x+cell/2, y+cell/2, cell/4, fill(opts.Mark))
			}
		}
	}

	if text {
		style := fmt.Sprintf(`font-family="sans-serif" font-size="%d" text-anchor="middle" %s`, cell/3, fill(opts.Text))
		for i := 0; i < 8; i++ {
			canvas.Text(m+i*cell+cell/2, size-m/3, string(rune('a'+i)), style)
			canvas.Text(m/2, m+(7-i)*cell+cell/2+cell/8, string(rune('1'+i)), style)
		}
	}

	canvas.End()
}

// Render rasterises bb into an image.
func Render(bb board.Bitboard, opts Options) (*image.RGBA, error) {
	if opts.Cell <= 0 {
		return nil, fmt.Errorf("diagram: invalid cell size %d", opts.Cell)
	}

	// oksvg has no text support, so labels are drawn separately.
	var buf bytes.Buffer
	writeSVG(&buf, bb, opts, false)

	icon, err := oksvg.ReadIconStream(&buf)
	if err != nil {
		return nil, fmt.Errorf("diagram: parse svg: %w", err)
	}

	size := opts.Size()
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	if opts.Labels {
		if err := drawLabels(rgba, opts); err != nil {
			return nil, err
		}
	}
	return rgba, nil
}

// PNG writes bb as a PNG image.
func PNG(w io.Writer, bb board.Bitboard, opts Options) error {
	img, err := Render(bb, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func drawLabels(dst *image.RGBA, opts Options) error {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("diagram: load font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(opts.Cell) / 3,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("diagram: load font: %w", err)
	}
	defer face.Close()

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(opts.Text), Face: face}
	size, m, cell := opts.Size(), opts.margin(), opts.Cell
	ascent := face.Metrics().Ascent.Ceil()

	draw := func(s string, cx, cy int) {
		width := d.MeasureString(s).Ceil()
		d.Dot = fixed.P(cx-width/2, cy+ascent/2)
		d.DrawString(s)
	}
	for i := 0; i < 8; i++ {
		draw(string(rune('a'+i)), m+i*cell+cell/2, size-m/2)
		draw(string(rune('1'+i)), m/2, m+(7-i)*cell+cell/2)
	}
	return nil
}
