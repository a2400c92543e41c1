package order

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopfront/storefront/internal/storage"
)

const lastOrderKey = "lastOrder"

// Archive keeps the most recent checkout snapshot in session-scoped storage
// for the confirmation view. Each checkout supersedes the previous snapshot.
type Archive struct {
	store storage.Store
}

func NewArchive(store storage.Store) *Archive {
	return &Archive{store: store}
}

func (a *Archive) Save(ctx context.Context, s Snapshot) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode order snapshot: %w", err)
	}
	if err := a.store.Put(ctx, lastOrderKey, raw); err != nil {
		return fmt.Errorf("save order snapshot: %w", err)
	}
	return nil
}

// Last returns the most recent snapshot, if any.
func (a *Archive) Last(ctx context.Context) (Snapshot, bool, error) {
	raw, ok, err := a.store.Get(ctx, lastOrderKey)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("load order snapshot: %w", err)
	}
	if !ok {
		return Snapshot{}, false, nil
	}

	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return Snapshot{}, false, fmt.Errorf("decode order snapshot: %w", err)
	}
	return s, true, nil
}
