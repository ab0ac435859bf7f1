package cache

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

// tempIDPrefix marks locally fabricated entry ids so they can never be
// mistaken for network-assigned content hashes.
const tempIDPrefix = "pending-"

// RefreshFunc re-queries the authoritative collection for a key from the
// network after a confirmed mutation.
type RefreshFunc func(ctx context.Context, key string) (Collection, error)

// Reconciler lets the UI reflect a mutation before network confirmation
// without corrupting the shared cache on failure.
type Reconciler struct {
	store   Store
	refresh RefreshFunc
}

// NewReconciler constructs a Reconciler over store. refresh may be nil, in
// which case Confirm only invalidates and the next reader repopulates.
func NewReconciler(store Store, refresh RefreshFunc) *Reconciler {
	return &Reconciler{store: store, refresh: refresh}
}

// ApplyOptimistic inserts a tentative entry into the collection for key,
// preserving chronological order, and returns the temporary id assigned to
// it. Each call generates a distinct id, so two concurrent actions under the
// same key can be rolled back independently.
func (r *Reconciler) ApplyOptimistic(key string, e Entry) string {
	e.ID = tempIDPrefix + uuid.Must(uuid.NewV4()).String()
	e.Pending = true

	col, _ := r.store.Get(key)
	col = insertChronological(col, e)
	r.store.Set(key, col)
	return e.ID
}

// Confirm finalizes a successful mutation: the cached collection is
// invalidated and re-queried from the network. The temporary entry is never
// promoted in place, because only the network assigns authoritative ids.
func (r *Reconciler) Confirm(ctx context.Context, key string) error {
	r.store.Invalidate(key)
	if r.refresh == nil {
		return nil
	}
	col, err := r.refresh(ctx, key)
	if err != nil {
		return err
	}
	r.store.Set(key, col)
	return nil
}

// Rollback removes exactly the entry matching tempID from the collection for
// key, leaving everything else untouched. Rollback is total: it cannot fail.
func (r *Reconciler) Rollback(key, tempID string) {
	col, ok := r.store.Get(key)
	if !ok {
		return
	}
	kept := make(Collection, 0, len(col))
	for _, e := range col {
		if e.ID == tempID {
			continue
		}
		kept = append(kept, e)
	}
	r.store.Set(key, kept)
}

// insertChronological places e after the last entry with CreatedAt <= e's,
// keeping the collection ordered and existing ties stable.
func insertChronological(col Collection, e Entry) Collection {
	i := len(col)
	for i > 0 && col[i-1].CreatedAt > e.CreatedAt {
		i--
	}
	out := make(Collection, 0, len(col)+1)
	out = append(out, col[:i]...)
	out = append(out, e)
	out = append(out, col[i:]...)
	return out
}
