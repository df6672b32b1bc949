package catalog

import "sync/atomic"

// snapshotHandle is the atomically-swapped pointer to the currently
// published snapshot (spec §4.9, §5). A nil value means no catalog has
// ever been published. Readers call acquire() to get a stable reference;
// because CatalogSnapshot is immutable once published, no further
// synchronization is needed while using the returned value.
type snapshotHandle struct {
	current atomic.Pointer[CatalogSnapshot]
}

// acquire returns the currently published snapshot, or nil if none has
// been published yet. This is an acquire-ordered load: any writes that
// constructed the snapshot happen-before this read observes it.
func (h *snapshotHandle) acquire() *CatalogSnapshot {
	return h.current.Load()
}

// publish atomically swaps in a newly-built, fully-initialized snapshot.
// This is a release-ordered store (spec §5: "Ordering guarantees").
func (h *snapshotHandle) publish(snap *CatalogSnapshot) {
	h.current.Store(snap)
}
