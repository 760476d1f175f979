package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// NotificationLogCleaner provides the ability to prune old notification log
// rows. The log is append-only everywhere else; this is the only deleter.
type NotificationLogCleaner interface {
	DeleteOldEntries(olderThan time.Time) (int64, error)
}

// CleanupNotificationLogTask removes notification log entries older than
// the configured retention period.
type CleanupNotificationLogTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for notification log cleanup.
func (t CleanupNotificationLogTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_notification_log",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupNotificationLogProcessor creates a processor function for
// CleanupNotificationLogTask.
func CleanupNotificationLogProcessor(cleaner NotificationLogCleaner) backlite.QueueProcessor[CleanupNotificationLogTask] {
	return func(ctx context.Context, task CleanupNotificationLogTask) error {
		if cleaner == nil {
			return fmt.Errorf("notification log cleaner not configured")
		}

		retentionDays := task.RetentionDays
		if retentionDays <= 0 {
			retentionDays = 90
		}
		cutoff := time.Now().AddDate(0, 0, -retentionDays)

		deleted, err := cleaner.DeleteOldEntries(cutoff)
		if err != nil {
			return fmt.Errorf("cleanup notification log: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d notification log entries older than %d days", deleted, retentionDays)
		return nil
	}
}

// NewCleanupNotificationLogQueue creates a backlite queue for notification
// log cleanup tasks.
func NewCleanupNotificationLogQueue(cleaner NotificationLogCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupNotificationLogProcessor(cleaner))
}
