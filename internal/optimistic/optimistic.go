// Package optimistic is the snapshot/rollback utility used by every
// multi-step local mutation: capture the collection before mutating, and if
// any later step fails, restore the capture verbatim.
package optimistic

// Snapshot holds a defensive copy of a slice taken before an optimistic
// mutation began.
type Snapshot[T any] struct {
	items []T
}

// Capture copies items so later in-place mutation cannot reach the snapshot.
func Capture[T any](items []T) Snapshot[T] {
	copied := make([]T, len(items))
	copy(copied, items)

	return Snapshot[T]{items: copied}
}

// Restore returns the captured state as a fresh slice, usable as the new
// current state after a failed mutation.
func (s Snapshot[T]) Restore() []T {
	restored := make([]T, len(s.items))
	copy(restored, s.items)

	return restored
}
