package amortize

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestTryPowersOfTwo(t *testing.T) {
	var a Atomic
	var hits []int
	for i := 1; i <= 100; i++ {
		if a.Try() {
			hits = append(hits, i)
		}
	}
	qt.Assert(t, qt.DeepEquals(hits, []int{1, 2, 4, 8, 16, 32, 64}))
}
