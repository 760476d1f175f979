package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// ObjectLister lists and removes objects in a storage bucket.
type ObjectLister interface {
	ListKeys(ctx context.Context, bucket, prefix string) ([]string, error)
	RemoveObject(ctx context.Context, bucket, key string) error
}

// KeyInventory returns the storage keys the database still references for
// one bucket.
type KeyInventory func() ([]string, error)

// SweepOrphansTask removes objects in a bucket that no database row
// references anymore. Documents leave orphans behind failed GC during
// renames; resumes leave them behind row deletion, which deliberately keeps
// the object for this sweep to collect later.
type SweepOrphansTask struct {
	Bucket string `json:"bucket"`
}

// Config returns the queue configuration for orphan sweeps.
func (t SweepOrphansTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "sweep_orphans",
		MaxAttempts: 2,
		Backoff:     10 * time.Minute,
		Timeout:     10 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// SweepOrphansProcessor creates a processor for orphan sweeps. inventories
// maps a bucket name to the function producing its referenced keys; buckets
// without an inventory are never swept.
func SweepOrphansProcessor(store ObjectLister, inventories map[string]KeyInventory) backlite.QueueProcessor[SweepOrphansTask] {
	return func(ctx context.Context, task SweepOrphansTask) error {
		if store == nil {
			return fmt.Errorf("object store not configured")
		}

		inventory, ok := inventories[task.Bucket]
		if !ok {
			return fmt.Errorf("no key inventory for bucket %q", task.Bucket)
		}

		referencedKeys, err := inventory()
		if err != nil {
			return fmt.Errorf("sweep %s: load referenced keys: %w", task.Bucket, err)
		}
		referenced := make(map[string]bool, len(referencedKeys))
		for _, key := range referencedKeys {
			referenced[key] = true
		}

		stored, err := store.ListKeys(ctx, task.Bucket, "")
		if err != nil {
			return fmt.Errorf("sweep %s: list objects: %w", task.Bucket, err)
		}

		var removed, failed int
		for _, key := range stored {
			if referenced[key] {
				continue
			}
			if err := store.RemoveObject(ctx, task.Bucket, key); err != nil {
				log.Printf("[TASK] Failed to remove orphan %s/%s: %v", task.Bucket, key, err)
				failed++
				continue
			}
			removed++
		}

		log.Printf("[TASK] Swept bucket %s: %d orphans removed, %d failed, %d objects referenced",
			task.Bucket, removed, failed, len(referenced))
		if failed > 0 {
			return fmt.Errorf("sweep %s: %d removals failed", task.Bucket, failed)
		}
		return nil
	}
}

// NewSweepOrphansQueue creates a backlite queue for orphan sweeps.
func NewSweepOrphansQueue(store ObjectLister, inventories map[string]KeyInventory) backlite.Queue {
	return backlite.NewQueue(SweepOrphansProcessor(store, inventories))
}
