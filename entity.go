package supergrid

// Entity is an axis-aligned rectangle with a caller-assigned ID.
// The ID must be unique among the entities currently in a Grid.
type Entity struct {
	ID uint32

	X      uint32
	Y      uint32
	Width  uint32
	Height uint32
}

// Query returns the rectangle covered by the entity.
func (e Entity) Query() Query {
	return Query{
		X:      e.X,
		Y:      e.Y,
		Width:  e.Width,
		Height: e.Height,
	}
}

// Query is a rectangular search region. Edges are inclusive: the region spans
// [X, X+Width] by [Y, Y+Height].
type Query struct {
	X      uint32
	Y      uint32
	Width  uint32
	Height uint32
}

// Overlaps reports whether two regions share at least one point.
// Grid results are candidates only; this is the exact test a caller can run
// on them.
func (a Query) Overlaps(b Query) bool {
	return a.X <= saturatingAdd(b.X, b.Width) && b.X <= saturatingAdd(a.X, a.Width) &&
		a.Y <= saturatingAdd(b.Y, b.Height) && b.Y <= saturatingAdd(a.Y, a.Height)
}
