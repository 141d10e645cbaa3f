package indexed

import (
	"iter"

	g "github.com/anacrolix/generics"
)

// An ordered set of entries. The table doesn't care which btree implementation is behind it.
type btreeSet[E any] interface {
	Upsert(e E) (replaced E, overwrote bool)
	Delete(e E) (actual E, removed bool)
	Contains(e E) bool
	Len() int
	Iter(yield func(E) bool)
	IterFrom(gte E) iter.Seq[E]
	GetGte(gte E) g.Option[E]
}

// Selects the btree implementation behind a Table.
type Backend int

const (
	// github.com/anacrolix/btree
	AnacrolixBtree Backend = iota
	// github.com/tidwall/btree
	TidwallBtree
	// github.com/google/btree
	GoogleBtree
)

func (me Backend) String() string {
	switch me {
	case AnacrolixBtree:
		return "anacrolix"
	case TidwallBtree:
		return "tidwall"
	case GoogleBtree:
		return "google"
	default:
		return "unknown"
	}
}

func makeSet[E any](backend Backend, cmp func(E, E) int) btreeSet[E] {
	switch backend {
	case TidwallBtree:
		return makeTidwallBtreeSet(cmp)
	case GoogleBtree:
		return makeGoogleBtreeSet(cmp)
	default:
		return makeAnacrolixBtreeSet(cmp)
	}
}
