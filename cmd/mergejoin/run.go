package main

import (
	"bufio"
	"cmp"
	"io"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/xerrors"

	"github.com/anacrolix/mergejoin"
	"github.com/anacrolix/mergejoin/indexed"
	"github.com/anacrolix/mergejoin/storage"
)

type output struct {
	*bufio.Writer
	delim string
}

func newOutput(w io.Writer, delim string) *output {
	return &output{bufio.NewWriter(w), delim}
}

// Formats a joined pair as the key followed by the remaining fields of each side.
func (me *output) combine(l, r line) (string, error) {
	fields := append([]string{l.key}, l.rest(me.delim)...)
	fields = append(fields, r.rest(me.delim)...)
	return strings.Join(fields, me.delim) + "\n", nil
}

func run(args joinArgs, stdin io.Reader, out *output) (stats mergejoin.Stats, err error) {
	leftIn, err := openInput(args.Left, stdin)
	if err != nil {
		return
	}
	defer leftIn.Close()
	rightIn, err := openInput(args.Right, stdin)
	if err != nil {
		return
	}
	defer rightIn.Close()
	leftFormat := lineFormat{delim: args.delim(), field: args.LeftField, numeric: args.Numeric}
	rightFormat := lineFormat{delim: args.delim(), field: args.RightField, numeric: args.Numeric}
	left := readLines(leftIn, leftFormat)
	right := readLines(rightIn, rightFormat)
	var opts []mergejoin.Option
	if args.CheckOrder {
		opts = append(opts, mergejoin.WithOrderCheck(true))
	}
	if args.MaxGroup > 0 {
		opts = append(opts, mergejoin.WithMaxGroupSize(args.MaxGroup))
	}
	switch args.Via {
	case "":
		if args.Numeric {
			return joinPulled(left, right, lineNum, cmp.Compare[float64], out, opts)
		}
		return joinPulled(left, right, lineKey, strings.Compare, out, opts)
	case "memory":
		if args.Numeric {
			return joinIndexed(left, right, lineNum, cmp.Compare[float64], out, opts)
		}
		return joinIndexed(left, right, lineKey, strings.Compare, out, opts)
	case "bolt", "sqlite":
		if args.Numeric {
			err = xerrors.Errorf("--numeric can't be used with --via %v, which orders keys bytewise", args.Via)
			return
		}
		return joinStored(args, left, right, rightFormat, out, opts)
	default:
		err = xerrors.Errorf("unknown --via %q", args.Via)
		return
	}
}

func joinPulled[K any](
	left, right mergejoin.Joinable[line],
	key mergejoin.KeyFunc[line, K],
	cmp mergejoin.CompareFunc[K],
	out *output,
	opts []mergejoin.Option,
) (mergejoin.Stats, error) {
	it := mergejoin.Join(left, key, right, key, cmp, out.combine, opts...)
	defer it.Close()
	for it.Next() {
		if _, err := out.WriteString(it.Value()); err != nil {
			return it.Stats(), xerrors.Errorf("writing output: %w", err)
		}
	}
	return it.Stats(), it.Err()
}

// Pushes results from a join against a loaded right side into out. The join fills in stats, but
// RightConsumed stays the number of right lines loaded.
func joinEach[R, K any](
	left mergejoin.Joinable[line], leftKey mergejoin.KeyFunc[line, K],
	right mergejoin.GroupReplayer[R, K],
	combine mergejoin.Combiner[line, R, string],
	out *output,
	opts []mergejoin.Option,
	stats *mergejoin.Stats,
) error {
	loaded := stats.RightConsumed
	defer func() { stats.RightConsumed = loaded }()
	var writeErr error
	err := mergejoin.Replay(left, leftKey, right, combine, func(s string) bool {
		_, writeErr = out.WriteString(s)
		return writeErr == nil
	}, append(slices.Clip(opts), mergejoin.WithStats(stats))...)
	if writeErr != nil {
		return xerrors.Errorf("writing output: %w", writeErr)
	}
	return err
}

// Loads right into an in-memory table, so right needn't be sorted.
func joinIndexed[K any](
	left, right mergejoin.Joinable[line],
	key mergejoin.KeyFunc[line, K],
	cmp mergejoin.CompareFunc[K],
	out *output,
	opts []mergejoin.Option,
) (stats mergejoin.Stats, err error) {
	tab := indexed.New(key, cmp)
	for l, err := range right.Elements() {
		if err != nil {
			return stats, &mergejoin.UpstreamError{Side: mergejoin.Right, Err: err}
		}
		tab.Insert(l)
		stats.RightConsumed++
	}
	err = joinEach(left, key, tab, out.combine, out, opts, &stats)
	return
}

type recordStore interface {
	mergejoin.GroupReplayer[storage.Record, []byte]
	PutRecords(iter.Seq[storage.Record]) error
}

// Keys are prefixed so that lines missing the join field still have a non-empty key.
func storeKey(key string) []byte {
	return append([]byte{'k'}, key...)
}

func lineStoreKey(l line) []byte {
	return storeKey(l.key)
}

// Loads right into an on-disk store, so right needn't be sorted or fit in memory.
func joinStored(
	args joinArgs,
	left, right mergejoin.Joinable[line],
	rightFormat lineFormat,
	out *output,
	opts []mergejoin.Option,
) (stats mergejoin.Stats, err error) {
	dir, err := os.MkdirTemp(args.ViaDir, "mergejoin")
	if err != nil {
		return
	}
	defer os.RemoveAll(dir)
	var store recordStore
	switch args.Via {
	case "bolt":
		db, err := storage.OpenBolt(filepath.Join(dir, "right.bolt"))
		if err != nil {
			return stats, err
		}
		defer db.Close()
		store, err = storage.NewBoltBucket(db, "right")
		if err != nil {
			return stats, err
		}
	case "sqlite":
		conn, err := storage.OpenSqlite(filepath.Join(dir, "right.db"))
		if err != nil {
			return stats, err
		}
		defer conn.Close()
		store, err = storage.NewSqliteTable(conn, "right")
		if err != nil {
			return stats, err
		}
	}
	var readErr error
	err = store.PutRecords(func(yield func(storage.Record) bool) {
		for l, err := range right.Elements() {
			if err != nil {
				readErr = err
				return
			}
			if !yield(storage.Record{Key: lineStoreKey(l), Value: []byte(l.text)}) {
				return
			}
			stats.RightConsumed++
		}
	})
	if readErr != nil {
		return stats, &mergejoin.UpstreamError{Side: mergejoin.Right, Err: readErr}
	}
	if err != nil {
		return stats, xerrors.Errorf("loading right input: %w", err)
	}
	combine := func(l line, r storage.Record) (string, error) {
		rl, err := rightFormat.parse(string(r.Value))
		if err != nil {
			return "", err
		}
		return out.combine(l, rl)
	}
	err = joinEach(left, lineStoreKey, store, combine, out, opts, &stats)
	return
}
