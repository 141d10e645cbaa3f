// Joins two sorted text files on a common field, like join(1).
//
// Example run:
// $ mergejoin --stats -t , users.csv orders.csv
// u1,ann,apple
// u1,ann,pear
// u3,cat,fig
// read 3 left lines and 3 right lines, 2 groups, largest 2: wrote 3 lines
package main

import (
	"expvar"
	"fmt"
	"io"
	stdLog "log"
	"log/slog"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/anacrolix/envpprof"
	"github.com/anacrolix/log"
	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"golang.org/x/xerrors"

	"github.com/anacrolix/mergejoin"
)

type joinArgs struct {
	Left       string `arg:"positional,required" help:"sorted left input, - for stdin"`
	Right      string `arg:"positional,required" help:"sorted right input, - for stdin"`
	LeftField  int    `arg:"-1,--left-field" default:"1" help:"join on this field of left lines"`
	RightField int    `arg:"-2,--right-field" default:"1" help:"join on this field of right lines"`
	Delimiter  string `arg:"-t,--delimiter" help:"field delimiter, tab if not given"`
	Numeric    bool   `help:"compare keys as numbers"`
	CheckOrder bool   `arg:"--check-order" help:"fail if either input is out of order"`
	MaxGroup   int    `arg:"--max-group" help:"fail if more right lines than this share a key"`
	Via        string `help:"load the right input into memory, bolt or sqlite and replay key groups from there"`
	ViaDir     string `arg:"--via-dir" help:"directory for the bolt or sqlite store, temporary if not given"`
	Stats      bool   `help:"print join statistics to stderr"`
	Debug      bool
}

func (me joinArgs) delim() string {
	if me.Delimiter == "" {
		return "\t"
	}
	return me.Delimiter
}

func main() {
	defer envpprof.Stop()
	if err := mainErr(); err != nil {
		log.Printf("error in main: %v", err)
		os.Exit(1)
	}
}

func mainErr() error {
	stdLog.SetFlags(stdLog.Flags() | stdLog.Lshortfile)
	var args joinArgs
	p := arg.MustParse(&args)
	if args.Left == "-" && args.Right == "-" {
		p.Fail("only one input can be stdin")
	}
	if args.LeftField < 1 || args.RightField < 1 {
		p.Fail("fields are numbered from 1")
	}
	minLevel := slog.LevelInfo
	if args.Debug {
		minLevel = slog.LevelDebug
		log.Default = log.Default.FilterLevel(log.Debug)
	}
	slog.SetDefault(slog.New(newStderrHandler(os.Stderr, minLevel)))
	out := newOutput(os.Stdout, args.delim())
	stats, err := run(args, os.Stdin, out)
	if flushErr := out.Flush(); err == nil {
		err = flushErr
	}
	slog.Debug("join finished", "stats", stats, "err", err)
	if args.Debug {
		spew.Fdump(os.Stderr, stats)
	}
	if args.Stats {
		printStats(os.Stderr, stats)
	}
	return err
}

func printStats(w io.Writer, stats mergejoin.Stats) {
	fmt.Fprintf(w,
		"read %s left lines and %s right lines, %s groups, largest %s: wrote %s lines\n",
		humanize.Comma(stats.LeftConsumed),
		humanize.Comma(stats.RightConsumed),
		humanize.Comma(stats.Groups),
		humanize.Comma(stats.MaxGroupBuffered),
		humanize.Comma(stats.Emitted),
	)
	if v := expvar.Get("mergejoin"); v != nil {
		fmt.Fprintf(w, "mergejoin: %s\n", v)
	}
}

func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("opening input: %w", err)
	}
	return f, nil
}
