package journal

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"), "journal")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testEntry(id string, ts time.Time) Entry {
	return Entry{
		ID:        id,
		UserID:    "landlord-1",
		Payload:   json.RawMessage(`{"tenant_id":"t-1","amount":1500}`),
		Timestamp: ts,
	}
}

func TestEnqueueAndGetBatchPreservesOrder(t *testing.T) {
	store := openTestStore(t)
	base := time.Now()

	require.NoError(t, store.Enqueue(testEntry("second", base.Add(time.Second))))
	require.NoError(t, store.Enqueue(testEntry("first", base)))

	entries, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "first", entries[0].ID)
	require.Equal(t, "second", entries[1].ID)
}

func TestEnqueueFillsMissingIDAndTimestamp(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Enqueue(Entry{UserID: "landlord-1", Payload: json.RawMessage(`{}`)}))

	entries, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotEmpty(t, entries[0].ID)
	require.False(t, entries[0].Timestamp.IsZero())
}

func TestGetBatchHonorsLimit(t *testing.T) {
	store := openTestStore(t)
	base := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Enqueue(testEntry("", base.Add(time.Duration(i)*time.Millisecond))))
	}

	entries, err := store.GetBatch(3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
}

func TestRemoveDeletesEntry(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Enqueue(testEntry("only", time.Now())))

	entries, err := store.GetBatch(1)
	require.NoError(t, err)
	require.NoError(t, store.Remove(entries[0]))

	size, err := store.Size()
	require.NoError(t, err)
	require.Zero(t, size)
}

func TestRemoveByIDWithoutBucketKey(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Enqueue(testEntry("by-id", time.Now())))

	require.NoError(t, store.Remove(Entry{ID: "by-id"}))

	size, err := store.Size()
	require.NoError(t, err)
	require.Zero(t, size)
}

func TestRequeueMovesEntryToTail(t *testing.T) {
	store := openTestStore(t)
	base := time.Now().Add(-time.Minute)
	require.NoError(t, store.Enqueue(testEntry("stuck", base)))
	require.NoError(t, store.Enqueue(testEntry("fresh", base.Add(time.Second))))

	entries, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Equal(t, "stuck", entries[0].ID)

	require.NoError(t, store.Remove(entries[0]))
	entries[0].Retries++
	require.NoError(t, store.Requeue(entries[0]))

	entries, err = store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "fresh", entries[0].ID)
	require.Equal(t, "stuck", entries[1].ID)
	require.Equal(t, 1, entries[1].Retries)
}

func TestCleanupDropsOldEntries(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()
	require.NoError(t, store.Enqueue(testEntry("old", now.Add(-48*time.Hour))))
	require.NoError(t, store.Enqueue(testEntry("recent", now)))

	require.NoError(t, store.Cleanup(now.Add(-24*time.Hour)))

	entries, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "recent", entries[0].ID)
}

func TestClosedStoreReturnsError(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Close())

	err := store.Enqueue(testEntry("late", time.Now()))
	require.Error(t, err)
}
