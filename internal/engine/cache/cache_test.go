package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry(t *testing.T) {
	data := json.RawMessage(`{"name":"pikachu"}`)
	entry := NewEntry("detail-abc", "detail", data, 60)

	assert.Equal(t, "detail-abc", entry.Key)
	assert.Equal(t, "detail", entry.Operation)
	assert.False(t, entry.IsExpired())
	assert.Greater(t, entry.TimeUntilExpiration(), time.Duration(0))
	assert.LessOrEqual(t, entry.Age(), time.Second)

	var decoded struct{ Name string }
	require.NoError(t, entry.Decode(&decoded))
	assert.Equal(t, "pikachu", decoded.Name)

	t.Run("Expired", func(t *testing.T) {
		e := NewEntry("k", "op", data, 60)
		e.ExpiresAt = time.Now().Add(-time.Second)
		assert.True(t, e.IsExpired())
		assert.Equal(t, time.Duration(0), e.TimeUntilExpiration())
	})

	t.Run("JSON", func(t *testing.T) {
		encoded, err := json.Marshal(entry)
		require.NoError(t, err)
		assert.Contains(t, string(encoded), entry.CreatedAt.Format(time.RFC3339))

		var back Entry
		require.NoError(t, json.Unmarshal(encoded, &back))
		assert.Equal(t, entry.Key, back.Key)
		assert.Equal(t, entry.Operation, back.Operation)
		assert.Equal(t, entry.TTLSeconds, back.TTLSeconds)
		assert.Equal(t, entry.ExpiresAt.Format(time.RFC3339), back.ExpiresAt.Format(time.RFC3339))
	})

	t.Run("BadTimestamp", func(t *testing.T) {
		var back Entry
		err := json.Unmarshal([]byte(`{"key":"k","created_at":"yesterday","expires_at":"x"}`), &back)
		assert.Error(t, err)
	})
}

func TestGenerateKey(t *testing.T) {
	a := GenerateKey(KeyParams{Operation: "list", Query: "PIKA ", Offset: 20, Limit: 20})
	b := GenerateKey(KeyParams{Operation: " List", Query: "pika", Offset: 20, Limit: 20})
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "list-"))

	c := GenerateKey(KeyParams{Operation: "list", Query: "pika", Offset: 40, Limit: 20})
	assert.NotEqual(t, a, c)

	d := GenerateKey(KeyParams{Operation: "detail", Name: "pika"})
	assert.NotEqual(t, a, d)
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, true, 60, 10)
	require.NoError(t, err)
	assert.True(t, store.IsEnabled())
	assert.Equal(t, dir, store.Directory())
	assert.Equal(t, time.Minute, store.TTL())

	data := json.RawMessage(`{"hello":"world"}`)

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, store.Set("k1", "list", data))

		entry, err := store.Get("k1")
		require.NoError(t, err)
		assert.JSONEq(t, string(data), string(entry.Data))
		assert.Equal(t, "list", entry.Operation)
	})

	t.Run("JSONHelpers", func(t *testing.T) {
		require.NoError(t, store.SetJSON("k2", "detail", map[string]int{"id": 25}))
		var out map[string]int
		require.NoError(t, store.GetJSON("k2", &out))
		assert.Equal(t, 25, out["id"])
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := store.Get("nope")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, store.GetJSON("nope", &struct{}{}), ErrNotFound)
	})

	t.Run("InvalidKey", func(t *testing.T) {
		assert.ErrorIs(t, store.Set("", "op", data), ErrInvalidKey)
		_, err := store.Get("")
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("KeyCannotEscapeDirectory", func(t *testing.T) {
		require.NoError(t, store.Set("../escape", "op", data))
		_, err := os.Stat(filepath.Join(dir, "escape.json"))
		require.NoError(t, err)
		require.NoError(t, store.Delete("../escape"))
	})

	t.Run("Stats", func(t *testing.T) {
		st, err := store.Stats()
		require.NoError(t, err)
		assert.Equal(t, 2, st.Entries)
		assert.Equal(t, 0, st.Expired)
		assert.Positive(t, st.Bytes)
		assert.False(t, st.Oldest.IsZero())
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete("k1"))
		require.NoError(t, store.Delete("k1"), "deleting twice is fine")
		_, err := store.Get("k1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.Set("a", "op", data))
		n, err := store.Clear()
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		st, err := store.Stats()
		require.NoError(t, err)
		assert.Zero(t, st.Entries)
	})
}

func TestFileStoreExpiry(t *testing.T) {
	dir := t.TempDir()
	expired, err := NewFileStore(dir, true, -1, 0)
	require.NoError(t, err)
	data := json.RawMessage(`{}`)

	require.NoError(t, expired.Set("gone", "op", data))
	_, err = expired.Get("gone")
	assert.ErrorIs(t, err, ErrExpired)
	_, err = os.Stat(filepath.Join(dir, "gone.json"))
	assert.True(t, os.IsNotExist(err), "expired entry is removed on read")

	require.NoError(t, expired.Set("stale", "op", data))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.json"), []byte("not json"), 0o600))

	fresh, err := NewFileStore(dir, true, 3600, 0)
	require.NoError(t, err)
	require.NoError(t, fresh.Set("live", "op", data))

	st, err := fresh.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, st.Entries)
	assert.Equal(t, 1, st.Expired)

	n, err := fresh.Prune()
	require.NoError(t, err)
	assert.Equal(t, 2, n, "expired and unreadable entries are pruned")

	_, err = fresh.Get("live")
	assert.NoError(t, err)
}

func TestFileStoreEvictsOldestOverCap(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, true, 3600, 1)
	require.NoError(t, err)

	big := json.RawMessage(`"` + strings.Repeat("x", 400*1024) + `"`)
	require.NoError(t, store.Set("first", "op", big))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "first.json"), old, old))
	require.NoError(t, store.Set("second", "op", big))
	require.NoError(t, store.Set("third", "op", big))

	_, err = store.Get("first")
	assert.ErrorIs(t, err, ErrNotFound, "oldest entry evicted")
	_, err = store.Get("third")
	assert.NoError(t, err)

	st, err := store.Stats()
	require.NoError(t, err)
	assert.LessOrEqual(t, st.Bytes, int64(bytesPerMB))
}

func TestDisabledStore(t *testing.T) {
	store, err := NewFileStore("", false, 60, 10)
	require.NoError(t, err)
	assert.False(t, store.IsEnabled())

	assert.ErrorIs(t, store.Set("k", "op", json.RawMessage(`{}`)), ErrDisabled)
	_, err = store.Get("k")
	assert.ErrorIs(t, err, ErrDisabled)
	_, err = store.Clear()
	assert.ErrorIs(t, err, ErrDisabled)
	_, err = store.Prune()
	assert.ErrorIs(t, err, ErrDisabled)
	_, err = store.Stats()
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestNewFileStoreRequiresDirectory(t *testing.T) {
	_, err := NewFileStore("", true, 60, 10)
	assert.Error(t, err)
}

func TestTTL(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		require.NoError(t, ValidateTTL(120))
		assert.ErrorIs(t, ValidateTTL(10), ErrInvalidTTL)
		assert.ErrorIs(t, ValidateTTL(MaxTTLSeconds+1), ErrInvalidTTL)
	})

	t.Run("ParseTTL", func(t *testing.T) {
		ttl, err := ParseTTL("3600")
		require.NoError(t, err)
		assert.Equal(t, 3600, ttl)

		ttl, err = ParseTTL("1h30m")
		require.NoError(t, err)
		assert.Equal(t, 5400, ttl)

		_, err = ParseTTL("5s")
		assert.ErrorIs(t, err, ErrInvalidTTL)

		_, err = ParseTTL("soon")
		assert.Error(t, err)
	})

	t.Run("FormatDuration", func(t *testing.T) {
		assert.Equal(t, "30s", FormatDuration(30*time.Second))
		assert.Equal(t, "5m", FormatDuration(5*time.Minute))
		assert.Equal(t, "2h", FormatDuration(2*time.Hour))
		assert.Equal(t, "2h30m", FormatDuration(2*time.Hour+30*time.Minute))
		assert.Equal(t, "3d", FormatDuration(72*time.Hour))
		assert.Equal(t, "3d2h", FormatDuration(74*time.Hour))
	})
}
