package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/magicboards/internal/board"
	"github.com/hailam/magicboards/internal/diagram"
	"github.com/hailam/magicboards/internal/magic"
)

// slider is a magic kind or the queen, which draws the union of both.
type slider struct {
	kind  magic.Kind
	queen bool
}

func parseSlider(s string) (slider, error) {
	if q := strings.ToLower(s); q == "queen" || q == "q" {
		return slider{queen: true}, nil
	}
	k, err := magic.ParseKind(s)
	if err != nil {
		return slider{}, err
	}
	return slider{kind: k}, nil
}

func (s slider) String() string {
	if s.queen {
		return "queen"
	}
	return s.kind.String()
}

// set returns the squares drawn for sq: the attack set against occupancy,
// or the blocker mask when no occupancy was given.
func (s slider) set(t *magic.Tables, sq board.Square, occupancy board.Bitboard, masks bool) board.Bitboard {
	switch {
	case masks && s.queen:
		return magic.RookMask(sq) | magic.BishopMask(sq)
	case masks:
		return t.Entry(s.kind, sq).Mask
	case s.queen:
		return t.Queen(sq, occupancy)
	default:
		return t.Attacks(s.kind, sq, occupancy)
	}
}

func dumpSquares(opts options) []board.Square {
	if opts.square != "" {
		sq, _ := board.ParseSquare(opts.square)
		return []board.Square{sq}
	}
	squares := make([]board.Square, 0, 64)
	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		squares = append(squares, sq)
	}
	return squares
}

// dump renders one PNG per requested square and returns how many were written.
func dump(t *magic.Tables, opts options) (int, error) {
	s, err := parseSlider(opts.kind)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(opts.dumpDir, 0755); err != nil {
		return 0, fmt.Errorf("create dump directory: %w", err)
	}

	squares := dumpSquares(opts)
	masks := opts.drawMasks()

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, sq := range squares {
		sq := sq
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			style := diagram.DefaultOptions()
			style.Origin = sq
			bb := s.set(t, sq, opts.occupancy, masks)
			return writePNG(filepath.Join(opts.dumpDir, fmt.Sprintf("%s-%s.png", s, sq)), bb, style)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(squares), nil
}

func writePNG(path string, bb board.Bitboard, style diagram.Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := diagram.PNG(f, bb, style); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}
