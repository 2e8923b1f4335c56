package diagram

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/hailam/magicboards/internal/board"
)

func near(a, b color.RGBA) bool {
	d := func(x, y uint8) bool {
		if x > y {
			return x-y <= 2
		}
		return y-x <= 2
	}
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B)
}

func TestSVG(t *testing.T) {
	bb := board.D4.Bitboard() | board.E5.Bitboard() | board.H8.Bitboard()
	opts := DefaultOptions()
	opts.Origin = board.A1

	var buf bytes.Buffer
	if err := SVG(&buf, bb, opts); err != nil {
		t.Fatalf("SVG failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatalf("output is not an svg document:\n%s", out)
	}
	if n := strings.Count(out, "<circle"); n != 3 {
		t.Errorf("circles = %d, want 3", n)
	}
	if n := strings.Count(out, "<rect"); n != 65 {
		t.Errorf("rects = %d, want 65", n)
	}
	if n := strings.Count(out, "<text"); n != 16 {
		t.Errorf("labels = %d, want 16", n)
	}
	if !strings.Contains(out, hex(opts.OriginColor)) {
		t.Error("origin square not highlighted")
	}
}

func TestSVGInvalidCell(t *testing.T) {
	opts := DefaultOptions()
	opts.Cell = 0
	if err := SVG(&bytes.Buffer{}, 0, opts); err == nil {
		t.Error("SVG with zero cell should fail")
	}
}

func TestPNG(t *testing.T) {
	bb := board.Bitboard(0x001010106E101000) // rook blocker mask on d4
	opts := DefaultOptions()
	opts.Cell = 32
	opts.Origin = board.D4

	var buf bytes.Buffer
	if err := PNG(&buf, bb, opts); err != nil {
		t.Fatalf("PNG failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != opts.Size() || b.Dy() != opts.Size() {
		t.Fatalf("bounds = %v, want %dx%d", b, opts.Size(), opts.Size())
	}

	tests := []struct {
		sq   board.Square
		want color.RGBA
	}{
		{board.D6, opts.Mark},
		{board.B4, opts.Mark},
		{board.D4, opts.OriginColor},
		{board.A1, opts.Dark},
		{board.H1, opts.Light},
		{board.D8, opts.Dark},
	}
	for _, tt := range tests {
		x, y := opts.SquareCenter(tt.sq)
		got := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
		if !near(got, tt.want) {
			t.Errorf("pixel at %s = %v, want %v", tt.sq, got, tt.want)
		}
	}
}
