package notify

import (
	"context"
	"encoding/json"

	"github.com/shopfront/storefront/internal/storage"
)

const settingsKey = "telegram_settings"

// SettingsCache remembers shopper-supplied notifier settings for the rest of
// the session, so a resend does not ask for them twice.
type SettingsCache struct {
	store storage.Store
}

func NewSettingsCache(store storage.Store) *SettingsCache {
	return &SettingsCache{store: store}
}

// Load returns the cached settings. A missing or unreadable entry simply
// reads as not cached.
func (c *SettingsCache) Load(ctx context.Context) (Settings, bool) {
	raw, ok, err := c.store.Get(ctx, settingsKey)
	if err != nil || !ok {
		return Settings{}, false
	}

	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil || !s.Complete() {
		return Settings{}, false
	}
	return s, true
}

func (c *SettingsCache) Save(ctx context.Context, s Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.store.Put(ctx, settingsKey, raw)
}
