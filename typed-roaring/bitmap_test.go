package typedRoaring

import (
	"cmp"
	"slices"
	"testing"

	"github.com/go-quicktest/qt"
	gocmp "github.com/google/go-cmp/cmp"

	"github.com/anacrolix/mergejoin"
)

type pieceIndex int

func TestValuesAscend(t *testing.T) {
	bm := FromValues[pieceIndex](9, 3, 70000, 3, 0)
	qt.Assert(t, qt.DeepEquals(slices.Collect(bm.Values()), []pieceIndex{0, 3, 9, 70000}))
	qt.Assert(t, qt.DeepEquals(slices.Collect(bm.IterFrom(4)), []pieceIndex{9, 70000}))
	qt.Assert(t, qt.Equals(bm.RangeCardinality(0, 10), uint64(3)))
	qt.Assert(t, qt.Equals(bm.RangeCardinality(3, 9), uint64(1)))
}

func TestJoinIsIntersection(t *testing.T) {
	a := FromValues[pieceIndex](1, 2, 3, 5, 8, 13)
	b := FromValues[pieceIndex](2, 3, 4, 8, 16)
	id := mergejoin.Identity[pieceIndex]
	var got []pieceIndex
	for p, err := range mergejoin.JoinPairs(a, id, b, id).All() {
		qt.Assert(t, qt.IsNil(err))
		got = append(got, p.Left)
	}
	want := []pieceIndex{2, 3, 8}
	qt.Assert(t, qt.DeepEquals(got, want))
	intersection := a.Clone()
	intersection.And(&b.Bitmap)
	qt.Assert(t, qt.DeepEquals(slices.Collect(intersection.Values()), want))
}

type dirtyChunk struct {
	piece pieceIndex
	chunk int
}

func TestReplayAgainstBitmap(t *testing.T) {
	// Only chunks of completed pieces survive.
	completed := FromValues[pieceIndex](1, 4)
	chunks := mergejoin.Slice([]dirtyChunk{{0, 0}, {1, 0}, {1, 1}, {2, 0}, {4, 3}, {4, 3}})
	pieceOf := func(c dirtyChunk) pieceIndex { return c.piece }
	keepChunk := func(c dirtyChunk, _ pieceIndex) (dirtyChunk, error) { return c, nil }
	want := []dirtyChunk{{1, 0}, {1, 1}, {4, 3}, {4, 3}}
	var got []dirtyChunk
	var stats mergejoin.Stats
	err := mergejoin.Replay(chunks, pieceOf, completed, keepChunk, func(c dirtyChunk) bool {
		got = append(got, c)
		return true
	}, mergejoin.WithStats(&stats))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.CmpEquals(got, want, gocmp.AllowUnexported(dirtyChunk{})))
	qt.Assert(t, qt.Equals(stats.Groups, int64(2)))
	qt.Assert(t, qt.Equals(stats.LeftConsumed, int64(6)))

	got = nil
	err = mergejoin.Each(
		chunks, pieceOf,
		completed, mergejoin.Identity[pieceIndex],
		cmp.Compare[pieceIndex],
		keepChunk,
		func(c dirtyChunk) bool {
			got = append(got, c)
			return true
		},
	)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.CmpEquals(got, want, gocmp.AllowUnexported(dirtyChunk{})))
}

func TestIteratorPeek(t *testing.T) {
	bm := FromValues[pieceIndex](5, 6, 100)
	it := bm.IteratorType()
	it.Initialize(bm)
	it.AdvanceIfNeeded(6)
	qt.Assert(t, qt.Equals(it.PeekNext(), pieceIndex(6)))
	qt.Assert(t, qt.Equals(it.Next(), pieceIndex(6)))
	qt.Assert(t, qt.DeepEquals(slices.Collect(it.Seq()), []pieceIndex{100}))
	qt.Assert(t, qt.IsFalse(it.HasNext()))
}
