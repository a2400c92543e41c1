package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shopfront/storefront/internal/storage"
)

var testLines = []Line{
	{Title: "Shirt", Quantity: 2, Price: 10.00},
	{Title: "Ring", Quantity: 1, Price: 5.00},
}

func TestNotifyPostsSendMessage(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n := NewTelegram(srv.URL, time.Second)
	err := n.Notify(context.Background(), "INV123", testLines, 27.50, Settings{Token: "abc", ChatID: "42"})
	require.NoError(t, err)

	require.Equal(t, "/botabc/sendMessage", gotPath)
	require.Equal(t, "42", gotBody["chat_id"])
	require.Equal(t, "Markdown", gotBody["parse_mode"])

	text := gotBody["text"]
	require.True(t, strings.HasPrefix(text, "🧾 New Order"), "message header: %q", text)
	require.Contains(t, text, "Invoice #: INV123")
	require.Contains(t, text, "- Shirt (x2) - $20.00")
	require.Contains(t, text, "- Ring (x1) - $5.00")
	require.Contains(t, text, "Total: $27.50")
}

func TestNotifyNonSuccessStatusIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false}`, http.StatusForbidden)
	}))
	defer srv.Close()

	n := NewTelegram(srv.URL, time.Second)
	err := n.Notify(context.Background(), "INV123", testLines, 27.50, Settings{Token: "abc", ChatID: "42"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "403")
}

func TestNotifyIncompleteSettings(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	n := NewTelegram(srv.URL, time.Second)
	err := n.Notify(context.Background(), "INV123", testLines, 27.50, Settings{Token: "abc"})
	require.Error(t, err)
	require.Zero(t, calls, "no request should be sent without a chat id")
}

func TestSettingsCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := NewSettingsCache(storage.NewMemory())

	_, ok := cache.Load(ctx)
	require.False(t, ok)

	want := Settings{Token: "tok", ChatID: "42"}
	require.NoError(t, cache.Save(ctx, want))

	got, ok := cache.Load(ctx)
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestSettingsCacheIgnoresMalformedEntry(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	require.NoError(t, mem.Put(ctx, "telegram_settings", []byte("{oops")))

	cache := NewSettingsCache(mem)
	_, ok := cache.Load(ctx)
	require.False(t, ok)
}
