package supergrid

// Package supergrid is a fixed-memory spatial hash grid for broad-phase
// overlap queries over axis-aligned rectangles.

import "unsafe"

// DefaultBucketCapacity is the number of entries a cell bucket, or an entity's
// list of cells, can hold.
const DefaultBucketCapacity = 32

// Options tunes a Grid. The zero value uses the defaults.
type Options struct {
	// BucketCapacity bounds both the IDs stored per cell and the cells
	// recorded per entity. Memory grows linearly with it. Default 32.
	BucketCapacity int
}

// taggedID is an entity ID as stored in a cell bucket. singleCell is set when
// the entity occupies exactly one cell, so it can never be seen twice by a
// query.
type taggedID struct {
	id         uint32
	singleCell bool
}

type cell struct {
	x, y uint32
}

// placement records that entity id was written into cell.
// Several IDs can share a reverse-map slot, so the owner is kept explicitly.
type placement struct {
	id   uint32
	cell cell
}

// Grid is a spatial hash grid. Cells are squares of side 1<<shift.
//
// All memory is allocated by NewGrid. A Grid is not safe for concurrent use.
type Grid struct {
	cells    *Table[bucket[taggedID]]
	entities *Table[bucket[placement]]
	shift    uint32
	capacity int

	// stamps[slot] == stamp marks a cell slot as seen by the current
	// Insert or QueryFast call.
	stamps []uint32
	stamp  uint32
}

// NewGrid creates a grid sized for about sizeHint entities, with cells of
// side 1<<shift.
func NewGrid(sizeHint int, shift uint32) *Grid {
	return NewGridOptions(sizeHint, shift, Options{})
}

// NewGridOptions is NewGrid with explicit options.
func NewGridOptions(sizeHint int, shift uint32, opts Options) *Grid {
	capacity := opts.BucketCapacity
	if capacity <= 0 {
		capacity = DefaultBucketCapacity
	}
	return &Grid{
		cells:    newBucketTable[taggedID](sizeHint, capacity),
		entities: newBucketTable[placement](sizeHint, capacity),
		shift:    shift,
		capacity: capacity,
		stamps:   make([]uint32, tableSlots(sizeHint)),
	}
}

// nextStamp starts a new pass over the cell slots.
func (g *Grid) nextStamp() {
	g.stamp++
	if g.stamp == 0 {
		clear(g.stamps)
		g.stamp = 1
	}
}

// visit marks slot as seen and reports whether it already was.
func (g *Grid) visit(slot int) bool {
	if g.stamps[slot] == g.stamp {
		return true
	}
	g.stamps[slot] = g.stamp
	return false
}

// MemoryBytes estimates the memory held by the grid's tables.
func (g *Grid) MemoryBytes() int {
	return tableBytes(g.cells.Len(), g.capacity)
}

// EstimateBytes returns the memory NewGridOptions allocates for a size hint
// and bucket capacity, without allocating it.
func EstimateBytes(sizeHint, bucketCapacity int) int {
	if bucketCapacity <= 0 {
		bucketCapacity = DefaultBucketCapacity
	}
	return tableBytes(tableSlots(sizeHint), bucketCapacity)
}

func tableBytes(slots, capacity int) int {
	perSlot := capacity*int(unsafe.Sizeof(taggedID{})+unsafe.Sizeof(placement{})) +
		int(unsafe.Sizeof(bucket[taggedID]{})+unsafe.Sizeof(bucket[placement]{})+unsafe.Sizeof(uint32(0)))
	return slots * perSlot
}

// Count returns the number of slots in the cell table. This is a sizing
// figure, not the number of entities.
func (g *Grid) Count() int {
	return g.cells.Len()
}

// Shift returns the cell size as a power of two.
func (g *Grid) Shift() uint32 {
	return g.shift
}

// BucketCapacity returns the per-bucket capacity.
func (g *Grid) BucketCapacity() int {
	return g.capacity
}

// Insert indexes e in every cell its rectangle touches.
//
// If a bucket is full, Insert returns a *CapacityExceededError and leaves the
// cells written so far in place; Delete removes them.
func (g *Grid) Insert(e *Entity) error {
	r := cellRangeOf(e.X, e.Y, e.Width, e.Height, g.shift)
	tag := taggedID{id: e.ID, singleCell: r.single()}
	placements := g.entities.Scalar(e.ID)

	// Two cells of one entity can alias to the same slot, and a slot must
	// hold an ID at most once.
	if !tag.singleCell {
		g.nextStamp()
	}

	for y := uint64(r.minY); y <= uint64(r.maxY); y++ {
		for x := uint64(r.minX); x <= uint64(r.maxX); x++ {
			c := cell{x: uint32(x), y: uint32(y)}
			slot := g.cells.Index(vectorKey(c.x, c.y))
			if !tag.singleCell && g.visit(slot) {
				continue
			}
			if placements.full() || !g.cells.Slot(slot).push(tag) {
				return &CapacityExceededError{ID: e.ID, X: c.x, Y: c.y}
			}
			placements.push(placement{id: e.ID, cell: c})
		}
	}
	return nil
}

// Delete removes id from every cell it was inserted into. It returns an
// *EntityNotFoundError if id is not indexed.
func (g *Grid) Delete(id uint32) error {
	placements := g.entities.Scalar(id)
	found := false
	for i := 0; i < len(*placements); {
		p := (*placements)[i]
		if p.id != id {
			i++
			continue
		}
		found = true
		removeID(g.cells.Vector(p.cell.x, p.cell.y), id)
		placements.removeAt(i)
	}
	if !found {
		return &EntityNotFoundError{ID: id}
	}
	return nil
}

func removeID(b *bucket[taggedID], id uint32) {
	for i, t := range *b {
		if t.id == id {
			b.removeAt(i)
			return
		}
	}
}

// Query returns the IDs of all entities whose cells overlap the cells of q.
// Each ID appears once; the order is unspecified. The results are candidates:
// callers that need exact overlap must test the rectangles themselves.
func (g *Grid) Query(q *Query) []uint32 {
	results := []uint32{}
	return g.QueryFast(q, results)
}

// QueryFast accepts a 'results' as input. If you are performing millions of queries,
// then reusing a 'results' slice will reduce the number of allocations.
func (g *Grid) QueryFast(q *Query, results []uint32) []uint32 {
	results = results[:0]
	r := cellRangeOf(q.X, q.Y, q.Width, q.Height, g.shift)

	if r.single() {
		// One slot holds each ID at most once
		for _, t := range *g.cells.Vector(r.minX, r.minY) {
			results = append(results, t.id)
		}
		return results
	}

	// Cells of the query can alias to the same slot; visit each slot once.
	g.nextStamp()

	for y := uint64(r.minY); y <= uint64(r.maxY); y++ {
		for x := uint64(r.minX); x <= uint64(r.maxX); x++ {
			slot := g.cells.Index(vectorKey(uint32(x), uint32(y)))
			if g.visit(slot) {
				continue
			}

			for _, t := range *g.cells.Slot(slot) {
				if t.singleCell || !containsUint32(results, t.id) {
					results = append(results, t.id)
				}
			}
		}
	}
	return results
}

// Clear removes every entity. The tables keep their size, so Count is
// unchanged and the grid stays usable.
func (g *Grid) Clear() {
	g.cells.Clear()
	g.entities.Clear()
}

func containsUint32(s []uint32, v uint32) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
