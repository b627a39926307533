package catalog

import (
	"sync"

	"go.uber.org/zap"

	"github.com/prayani09/ShriyashWork/internal/store"
)

// View owns one store subscription and serves the latest decoded product
// collection to the API layer. Each snapshot replaces the whole in-memory
// copy; nothing is patched incrementally. Close releases the subscription.
type View struct {
	sub *store.Subscription

	mu      sync.RWMutex
	entries []Entry
}

// NewView attaches to path and seeds the view from the attach snapshot, so
// reads immediately after construction see current state.
func NewView(st *store.Store, path string) (*View, error) {
	sub, err := st.Subscribe(path)
	if err != nil {
		return nil, err
	}
	v := &View{sub: sub}

	// The attach snapshot is already buffered; consume it before serving.
	select {
	case snap := <-sub.Updates():
		v.entries = EntriesFromSnapshot(snap)
	default:
	}

	go v.run(path)
	return v, nil
}

func (v *View) run(path string) {
	for snap := range v.sub.Updates() {
		entries := EntriesFromSnapshot(snap)
		v.mu.Lock()
		v.entries = entries
		v.mu.Unlock()
	}
	zap.S().Debugf("catalog view on %s stopped", path)
}

// Entries returns the current collection ordered by id. Callers treat the
// slice as read-only; every transform in this package copies.
func (v *View) Entries() []Entry {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.entries
}

// Close releases the underlying subscription.
func (v *View) Close() {
	v.sub.Close()
}
