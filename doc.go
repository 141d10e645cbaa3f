/*
Package mergejoin implements a sort-merge inner join over two sequences that are already
ordered by a key.

Every pair of elements, one from each side, whose keys compare equal is combined and
produced in ascending key order. Within a key, results follow nested iteration order: each
left element in turn, against every right element of the key in their original order.
Neither input is materialized; the only buffering is the right side's current key group.

Simple example:

	left := mergejoin.Slice([]int{1, 1, 2})
	right := mergejoin.Slice([]int{1, 2, 2})
	it := mergejoin.JoinPairs(left, mergejoin.Identity[int], right, mergejoin.Identity[int])
	defer it.Close()
	for it.Next() {
		fmt.Println(it.Value())
	}
	if err := it.Err(); err != nil {
		log.Fatal(err)
	}

Each is the push form: the join drives itself and calls back once per result. Replay is the push
form against a right-hand collection that can look up a key group on demand (GroupReplayer), and
buffers nothing. It matches by the collection's own key and order.

Inputs must be non-decreasing under the supplied CompareFunc. This isn't checked unless
WithOrderCheck is used, and violating it gives an unspecified (but memory safe) result set.
Iterators are not safe for concurrent use.
*/
package mergejoin
