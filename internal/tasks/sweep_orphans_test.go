package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectStore struct {
	objects map[string][]string // bucket -> keys
	removed []string
	failOn  map[string]bool
}

func (f *fakeObjectStore) ListKeys(ctx context.Context, bucket, prefix string) ([]string, error) {
	return f.objects[bucket], nil
}

func (f *fakeObjectStore) RemoveObject(ctx context.Context, bucket, key string) error {
	if f.failOn[key] {
		return errors.New("remove failed")
	}
	f.removed = append(f.removed, bucket+"/"+key)
	return nil
}

func TestSweepOrphansProcessor(t *testing.T) {
	store := &fakeObjectStore{
		objects: map[string][]string{
			"content": {"articles/kept.mdx", "articles/orphan.mdx", "old/stale.mdx"},
		},
	}
	inventories := map[string]KeyInventory{
		"content": func() ([]string, error) {
			return []string{"articles/kept.mdx"}, nil
		},
	}

	processor := SweepOrphansProcessor(store, inventories)
	require.NoError(t, processor(context.Background(), SweepOrphansTask{Bucket: "content"}))

	assert.ElementsMatch(t, []string{
		"content/articles/orphan.mdx",
		"content/old/stale.mdx",
	}, store.removed)
}

func TestSweepOrphansProcessor_UnknownBucket(t *testing.T) {
	processor := SweepOrphansProcessor(&fakeObjectStore{}, map[string]KeyInventory{})
	err := processor(context.Background(), SweepOrphansTask{Bucket: "images"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no key inventory")
}

func TestSweepOrphansProcessor_RemovalFailureReported(t *testing.T) {
	store := &fakeObjectStore{
		objects: map[string][]string{"content": {"a.mdx", "b.mdx"}},
		failOn:  map[string]bool{"a.mdx": true},
	}
	inventories := map[string]KeyInventory{
		"content": func() ([]string, error) { return nil, nil },
	}

	processor := SweepOrphansProcessor(store, inventories)
	err := processor(context.Background(), SweepOrphansTask{Bucket: "content"})
	require.Error(t, err)

	// The failure does not stop the rest of the sweep.
	assert.Equal(t, []string{"content/b.mdx"}, store.removed)
}

type fakeCleaner struct {
	gotRetention time.Duration
	deleted      int64
}

func (f *fakeCleaner) DeleteOldEvents(retention time.Duration) (int64, error) {
	f.gotRetention = retention
	return f.deleted, nil
}

func TestCleanupAuditEventsProcessor_DefaultRetention(t *testing.T) {
	cleaner := &fakeCleaner{deleted: 7}
	processor := CleanupAuditEventsProcessor(cleaner)

	require.NoError(t, processor(context.Background(), CleanupAuditEventsTask{}))
	assert.Equal(t, 30*24*time.Hour, cleaner.gotRetention)

	require.NoError(t, processor(context.Background(), CleanupAuditEventsTask{RetentionDays: 7}))
	assert.Equal(t, 7*24*time.Hour, cleaner.gotRetention)
}

func TestCleanupAuditEventsProcessor_NilCleaner(t *testing.T) {
	processor := CleanupAuditEventsProcessor(nil)
	assert.Error(t, processor(context.Background(), CleanupAuditEventsTask{}))
}
