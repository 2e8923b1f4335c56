// Command magicgen searches magic multipliers for the rook and bishop
// tables, verifies them, stores them and renders attack diagrams.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hailam/magicboards/internal/board"
	"github.com/hailam/magicboards/internal/magic"
	"github.com/hailam/magicboards/internal/storage"
)

const (
	exitOK  = 0
	exitErr = 1
)

type options struct {
	seed       uint64
	attempts   int
	dbDir      string
	name       string
	save       bool
	load       bool
	verify     bool
	dumpDir    string
	kind       string
	square     string
	occupancy  board.Bitboard
	hasOcc     bool
	verbose    bool
	noColor    bool
	cpuprofile string
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	var occ string

	fs := flag.NewFlagSet("magicgen", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Uint64Var(&opts.seed, "seed", magic.DefaultSeed, "seed for the candidate generator")
	fs.IntVar(&opts.attempts, "attempts", magic.DefaultMaxAttempts, "maximum candidates per square")
	fs.StringVar(&opts.dbDir, "db", "", "database directory (default: platform data dir)")
	fs.StringVar(&opts.name, "name", "default", "name of the stored constant set")
	fs.BoolVar(&opts.save, "save", false, "store the constants after building")
	fs.BoolVar(&opts.load, "load", false, "rebuild tables from stored constants instead of searching")
	fs.BoolVar(&opts.verify, "verify", false, "check every blocker board against ray marching")
	fs.StringVar(&opts.dumpDir, "dump", "", "write one PNG diagram per square into this directory")
	fs.StringVar(&opts.kind, "kind", "queen", "slider to draw: rook, bishop or queen")
	fs.StringVar(&opts.square, "square", "", "draw only this square (e.g. e4)")
	fs.StringVar(&occ, "occupancy", "", "occupancy bitboard in hex; empty draws blocker masks")
	fs.BoolVar(&opts.verbose, "v", false, "log every square while searching")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	fs.StringVar(&opts.cpuprofile, "cpuprofile", "", "write cpu profile to file")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if opts.save && opts.load {
		return opts, errors.New("-save and -load are mutually exclusive")
	}
	if occ != "" {
		v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(occ), "0x"), 16, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid -occupancy %q: %w", occ, err)
		}
		opts.occupancy = board.Bitboard(v)
		opts.hasOcc = true
	}
	if _, err := parseSlider(opts.kind); err != nil {
		return opts, err
	}
	if opts.square != "" {
		if _, err := board.ParseSquare(opts.square); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// drawMasks reports whether diagrams show blocker masks. Any -occupancy,
// including 0, switches them to attack sets.
func (o options) drawMasks() bool {
	return !o.hasOcc
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(exitOK)
	}
	if err != nil {
		log.Println(err)
		os.Exit(exitErr)
	}

	if opts.cpuprofile != "" {
		f, err := os.Create(opts.cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", opts.cpuprofile)
	}

	if err := realMain(opts, os.Stdout); err != nil {
		log.Println(err)
		pprof.StopCPUProfile()
		os.Exit(exitErr)
	}
}

func realMain(opts options, out io.Writer) error {
	color.NoColor = color.NoColor || opts.noColor
	ok := color.New(color.FgGreen, color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()
	p := message.NewPrinter(language.English)

	var store *storage.Storage
	if opts.save || opts.load {
		var err error
		if opts.dbDir != "" {
			store, err = storage.Open(opts.dbDir)
		} else {
			store, err = storage.OpenDefault()
		}
		if err != nil {
			return err
		}
		defer store.Close()
	}

	start := time.Now()
	var (
		tables *magic.Tables
		stats  magic.Stats
		err    error
	)
	if opts.load {
		tables, err = store.LoadTables(opts.name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s loaded %q (seed %#x) in %v\n", ok("✓"), opts.name, tables.Seed(), time.Since(start).Round(time.Millisecond))
	} else {
		buildOpts := []magic.Option{
			magic.WithSeed(opts.seed),
			magic.WithMaxAttempts(opts.attempts),
			magic.WithStats(&stats),
		}
		if opts.verbose {
			buildOpts = append(buildOpts, magic.WithLogger(log.Default()))
		}
		tables, err = magic.Build(buildOpts...)
		if err != nil {
			var serr *magic.SearchError
			if errors.As(err, &serr) {
				return fmt.Errorf("%w (raise -attempts or change -seed)", err)
			}
			return err
		}
		fmt.Fprintf(out, "%s built %s slots from %s candidates in %v\n", ok("✓"),
			p.Sprintf("%d", tables.Size()), p.Sprintf("%d", stats.Total()), time.Since(start).Round(time.Millisecond))
	}

	if opts.verify {
		if err := tables.Verify(); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s verified every blocker board\n", ok("✓"))
	}

	if opts.save {
		rec := storage.Record{Name: opts.name, Set: tables.Constants(), Attempts: stats.Total()}
		if err := store.SaveConstants(rec); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s saved as %q\n", ok("✓"), opts.name)
	}

	if opts.dumpDir != "" {
		n, err := dump(tables, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s wrote %s diagrams to %s\n", ok("✓"), p.Sprintf("%d", n), opts.dumpDir)
	}

	printConstants(out, tables, faint)
	return nil
}

func printConstants(out io.Writer, tables *magic.Tables, faint func(...interface{}) string) {
	for _, k := range magic.Kinds {
		fmt.Fprintf(out, "%s\n", k)
		for sq := board.Square(0); sq < board.NoSquare; sq++ {
			e := tables.Entry(k, sq)
			fmt.Fprintf(out, "  %s %#016x %s\n", sq, e.Magic, faint(fmt.Sprintf("bits=%d", e.Bits)))
		}
	}
}
