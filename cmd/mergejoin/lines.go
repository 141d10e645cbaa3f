package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"golang.org/x/xerrors"

	"github.com/anacrolix/mergejoin"
)

// An input line and its join field. Comparable so lines can be kept in an indexed.Table.
type line struct {
	text string
	// 0-based index of the join field, or -1 if the line doesn't have it.
	field int
	key   string
	num   float64
}

type lineFormat struct {
	delim string
	// 1-based, as given on the command line.
	field   int
	numeric bool
}

func (me lineFormat) parse(text string) (l line, err error) {
	l.text = text
	fields := strings.Split(text, me.delim)
	if me.field > len(fields) {
		l.field = -1
		if me.numeric {
			err = xerrors.Errorf("missing numeric key field %d", me.field)
		}
		return
	}
	l.field = me.field - 1
	l.key = fields[l.field]
	if me.numeric {
		l.num, err = strconv.ParseFloat(strings.TrimSpace(l.key), 64)
		if err != nil {
			err = xerrors.Errorf("parsing numeric key %q: %w", l.key, err)
		}
	}
	return
}

// The fields other than the join field.
func (me line) rest(delim string) []string {
	fields := strings.Split(me.text, delim)
	if me.field < 0 {
		return fields
	}
	return append(fields[:me.field:me.field], fields[me.field+1:]...)
}

func lineKey(l line) string {
	return l.key
}

func lineNum(l line) float64 {
	return l.num
}

func lineKeyBytes(l line) []byte {
	return []byte(l.key)
}

// Lines of r, parsed with format. A read or parse failure ends the sequence.
func readLines(r io.Reader, format lineFormat) mergejoin.Seq2[line] {
	return func(yield func(line, error) bool) {
		s := bufio.NewScanner(r)
		s.Buffer(nil, 1<<20)
		var lineNo int
		for s.Scan() {
			lineNo++
			l, err := format.parse(s.Text())
			if err != nil {
				yield(l, xerrors.Errorf("line %d: %w", lineNo, err))
				return
			}
			if !yield(l, nil) {
				return
			}
		}
		if err := s.Err(); err != nil {
			yield(line{}, xerrors.Errorf("after line %d: %w", lineNo, err))
		}
	}
}
