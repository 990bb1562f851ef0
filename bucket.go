package supergrid

// bucket is a bounded sequence. Its capacity is fixed by the backing array it
// was carved from, so push never reallocates.
type bucket[T any] []T

func (b *bucket[T]) full() bool {
	return len(*b) == cap(*b)
}

// push appends v, or reports false if the bucket is full.
func (b *bucket[T]) push(v T) bool {
	if b.full() {
		return false
	}
	*b = append(*b, v)
	return true
}

// removeAt moves the last element into position i. Order is not preserved.
func (b *bucket[T]) removeAt(i int) {
	s := *b
	last := len(s) - 1
	s[i] = s[last]
	var zero T
	s[last] = zero
	*b = s[:last]
}

// carve returns a slot initialiser that hands out consecutive, non-overlapping
// windows of backing, each holding up to capacity elements.
func carve[T any](backing []T, capacity int) func(i int) bucket[T] {
	return func(i int) bucket[T] {
		lo := i * capacity
		return bucket[T](backing[lo:lo:lo+capacity])
	}
}

// newBucketTable allocates a table of buckets sharing one backing array.
func newBucketTable[T any](sizeHint, capacity int) *Table[bucket[T]] {
	n := tableSlots(sizeHint)
	return NewTableFunc[bucket[T]](sizeHint, carve(make([]T, n*capacity), capacity))
}
