package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/anacrolix/mergejoin"
)

func writeInput(t *testing.T, name string, lines ...string) string {
	p := filepath.Join(t.TempDir(), name)
	qt.Assert(t, qt.IsNil(os.WriteFile(p, []byte(strings.Join(lines, "\n")+"\n"), 0o600)))
	return p
}

func runString(t *testing.T, args joinArgs, stdin string) (string, mergejoin.Stats, error) {
	var buf bytes.Buffer
	out := newOutput(&buf, args.delim())
	stats, err := run(args, strings.NewReader(stdin), out)
	qt.Assert(t, qt.IsNil(out.Flush()))
	return buf.String(), stats, err
}

func defaultArgs(left, right string) joinArgs {
	return joinArgs{
		Left:       left,
		Right:      right,
		LeftField:  1,
		RightField: 1,
		Delimiter:  ",",
	}
}

func TestJoinFiles(t *testing.T) {
	users := writeInput(t, "users", "u1,ann", "u2,bob", "u3,cat")
	orders := writeInput(t, "orders", "apple,u1", "pear,u1", "fig,u3")
	want := "u1,ann,apple\nu1,ann,pear\nu3,cat,fig\n"
	for _, via := range []string{"", "memory", "bolt", "sqlite"} {
		t.Run(via, func(t *testing.T) {
			args := defaultArgs(users, orders)
			args.RightField = 2
			args.Via = via
			args.CheckOrder = true
			args.ViaDir = t.TempDir()
			got, stats, err := runString(t, args, "")
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(got, want))
			qt.Check(t, qt.Equals(stats.Emitted, int64(3)))
			qt.Check(t, qt.Equals(stats.RightConsumed, int64(3)))
			qt.Check(t, qt.Equals(stats.LeftConsumed, int64(3)))
			qt.Check(t, qt.Equals(stats.Groups, int64(2)))
		})
	}
}

func TestStdinAndTabs(t *testing.T) {
	right := writeInput(t, "right", "a\tx", "a\ty", "c\tz")
	args := defaultArgs("-", right)
	args.Delimiter = ""
	got, stats, err := runString(t, args, "a\t1\nb\t2\nc\t3\n")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, "a\t1\tx\na\t1\ty\nc\t3\tz\n"))
	qt.Check(t, qt.Equals(stats.MaxGroupBuffered, int64(2)))
}

func TestNumeric(t *testing.T) {
	left := writeInput(t, "left", "2,two", "10,ten")
	right := writeInput(t, "right", "2.0,deux", "10,dix")
	args := defaultArgs(left, right)
	args.Numeric = true
	got, _, err := runString(t, args, "")
	qt.Assert(t, qt.IsNil(err))
	// The key printed is the left's.
	qt.Assert(t, qt.Equals(got, "2,two,deux\n10,ten,dix\n"))

	args.Via = "sqlite"
	_, _, err = runString(t, args, "")
	qt.Assert(t, qt.IsNotNil(err))
}

func TestBadNumericKey(t *testing.T) {
	left := writeInput(t, "left", "1,a", "x,b")
	right := writeInput(t, "right", "1,c")
	args := defaultArgs(left, right)
	args.Numeric = true
	_, _, err := runString(t, args, "")
	var upstream *mergejoin.UpstreamError
	qt.Assert(t, qt.ErrorAs(err, &upstream))
	qt.Assert(t, qt.Equals(upstream.Side, mergejoin.Left))
	qt.Assert(t, qt.ErrorMatches(err, `.*line 2: parsing numeric key "x".*`))
}

func TestNumericMissingField(t *testing.T) {
	left := writeInput(t, "left", "a,1", "b")
	right := writeInput(t, "right", "0,z", "1,c")
	args := defaultArgs(left, right)
	args.LeftField = 2
	args.RightField = 1
	args.Numeric = true
	// Without the check, "b" would join with "0,z".
	_, _, err := runString(t, args, "")
	var upstream *mergejoin.UpstreamError
	qt.Assert(t, qt.ErrorAs(err, &upstream))
	qt.Assert(t, qt.Equals(upstream.Side, mergejoin.Left))
	qt.Assert(t, qt.ErrorMatches(err, `.*line 2: missing numeric key field 2.*`))
}

func TestCheckOrder(t *testing.T) {
	left := writeInput(t, "left", "b,1", "a,2")
	right := writeInput(t, "right", "a,x", "b,y")
	args := defaultArgs(left, right)
	args.CheckOrder = true
	_, _, err := runString(t, args, "")
	qt.Assert(t, qt.ErrorIs(err, mergejoin.ErrOutOfOrder))
}

func TestUnsortedRightViaMemory(t *testing.T) {
	left := writeInput(t, "left", "a,1", "b,2")
	right := writeInput(t, "right", "b,y", "a,x", "b,z")
	args := defaultArgs(left, right)
	args.Via = "memory"
	got, _, err := runString(t, args, "")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, "a,1,x\nb,2,y\nb,2,z\n"))
}

func TestMissingField(t *testing.T) {
	left := writeInput(t, "left", "a,1")
	right := writeInput(t, "right", "a,x")
	args := defaultArgs(left, right)
	args.LeftField = 3
	got, _, err := runString(t, args, "")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, ""))
}

func TestUnknownVia(t *testing.T) {
	args := defaultArgs(writeInput(t, "l", "a"), writeInput(t, "r", "a"))
	args.Via = "postgres"
	_, _, err := runString(t, args, "")
	qt.Assert(t, qt.ErrorMatches(err, `unknown --via "postgres"`))
}

func TestSlogLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(newStderrHandler(&buf, slog.LevelInfo)).With("join", 1)
	l.Debug("hidden")
	l.Info("shown", "stats", mergejoin.Stats{Emitted: 3})
	qt.Assert(t, qt.IsFalse(strings.Contains(buf.String(), "hidden")))
	qt.Assert(t, qt.StringContains(buf.String(), "stats.emitted=3"))
	qt.Assert(t, qt.StringContains(buf.String(), "join=1"))
}
