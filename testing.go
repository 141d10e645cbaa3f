package mergejoin

// Joins by brute force, comparing every left element with every right element. Slices needn't be
// sorted, but when they are the result matches Join exactly. For checking other joins in tests.
func TestingNestedLoop[L, R, K, Res any](
	left []L, leftKey KeyFunc[L, K],
	right []R, rightKey KeyFunc[R, K],
	cmp CompareFunc[K],
	combine Combiner[L, R, Res],
) (ret []Res, err error) {
	for _, l := range left {
		lk := leftKey(l)
		for _, r := range right {
			if cmp(lk, rightKey(r)) != 0 {
				continue
			}
			res, err := combine(l, r)
			if err != nil {
				return ret, err
			}
			ret = append(ret, res)
		}
	}
	return
}
