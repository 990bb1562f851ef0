package supergrid

import "fmt"

// CapacityExceededError is returned by Insert when a bucket touched by the
// entity is already full. Cells written earlier in the same call are kept, so
// the entity should be deleted before it is inserted again.
type CapacityExceededError struct {
	ID uint32

	// Cell that could not be written.
	X, Y uint32
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("bucket capacity exceeded inserting entity %d at cell (%d, %d)", e.ID, e.X, e.Y)
}

// EntityNotFoundError is returned by Delete for an ID that is not indexed.
type EntityNotFoundError struct {
	ID uint32
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity %d is not in the grid", e.ID)
}
