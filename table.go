package supergrid

// Table is a fixed-size, direct-mapped hash table.
//
// Every key maps to exactly one slot and there is no collision resolution:
// distinct keys that land in the same slot share it. The slot count is fixed
// when the table is created.
type Table[T any] struct {
	slots []T
	init  func(i int) T
}

// NewTable creates a table sized for roughly sizeHint live entities.
// The slot count is nextPowerOfTwo(sizeHint*1000)+1.
func NewTable[T any](sizeHint int) *Table[T] {
	return NewTableFunc[T](sizeHint, nil)
}

// NewTableFunc is like NewTable, but slot i starts out (and is reset by Clear
// to) init(i) instead of the zero value.
func NewTableFunc[T any](sizeHint int, init func(i int) T) *Table[T] {
	t := &Table[T]{
		slots: make([]T, tableSlots(sizeHint)),
		init:  init,
	}
	if init != nil {
		for i := range t.slots {
			t.slots[i] = init(i)
		}
	}
	return t
}

// Len returns the number of slots.
func (t *Table[T]) Len() int {
	return len(t.slots)
}

// Index returns the slot index for a key. It is always in [0, Len()).
func (t *Table[T]) Index(key uint64) int {
	return int(hashKey(key) % uint64(len(t.slots)))
}

// Slot returns the slot at index i, as produced by Index.
func (t *Table[T]) Slot(i int) *T {
	return &t.slots[i]
}

// Vector returns the slot for the 2D key (x, y).
func (t *Table[T]) Vector(x, y uint32) *T {
	return &t.slots[t.Index(vectorKey(x, y))]
}

// Scalar returns the slot for the scalar key s.
func (t *Table[T]) Scalar(s uint32) *T {
	return &t.slots[t.Index(uint64(s))]
}

// Clear resets every slot to its initial value. The slot count is kept.
func (t *Table[T]) Clear() {
	if t.init == nil {
		clear(t.slots)
		return
	}
	for i := range t.slots {
		t.slots[i] = t.init(i)
	}
}
