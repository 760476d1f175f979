// Package scheduler periodically enqueues the retention and orphan-sweep
// tasks. The cron side only enqueues; the task queue does the work, so a
// slow sweep never blocks the schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/antonbelau/folio/internal/config"
	"github.com/antonbelau/folio/internal/tasks"
)

// SweepScheduler triggers the periodic maintenance tasks: audit-log
// retention, notification-log retention, and orphaned storage-object
// sweeps.
type SweepScheduler struct {
	taskClient *tasks.Client
	cfg        config.Sweep
	audit      config.Audit
	buckets    []string

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

// NewSweepScheduler creates a scheduler. buckets lists the storage buckets
// the orphan sweep should visit.
func NewSweepScheduler(taskClient *tasks.Client, cfg config.Sweep, audit config.Audit, buckets []string) *SweepScheduler {
	return &SweepScheduler{
		taskClient: taskClient,
		cfg:        cfg,
		audit:      audit,
		buckets:    buckets,
		cron: cron.New(cron.WithParser(cron.NewParser(
			cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the schedule if sweeps are enabled.
func (s *SweepScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Enabled {
		log.Printf("Sweep scheduler: disabled")
		return nil
	}
	if s.taskClient == nil {
		log.Printf("Sweep scheduler: task queue not available, skipping")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cfg.Schedule, s.enqueueSweeps)
	if err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.cfg.Schedule, err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Printf("Sweep scheduler: started with schedule %q", s.cfg.Schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running enqueue to
// finish.
func (s *SweepScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false

	log.Printf("Sweep scheduler: stopped")
}

// IsRunning returns whether the scheduler is active.
func (s *SweepScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next sweep will be enqueued.
func (s *SweepScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// RunNow enqueues all sweeps immediately.
func (s *SweepScheduler) RunNow() {
	s.enqueueSweeps()
}

func (s *SweepScheduler) enqueueSweeps() {
	if _, err := s.taskClient.Add(tasks.CleanupAuditEventsTask{
		RetentionDays: s.audit.RetentionDays,
	}).Save(); err != nil {
		log.Printf("Sweep scheduler: failed to enqueue audit cleanup: %v", err)
	}

	if _, err := s.taskClient.Add(tasks.CleanupNotificationLogTask{}).Save(); err != nil {
		log.Printf("Sweep scheduler: failed to enqueue notification log cleanup: %v", err)
	}

	for _, bucket := range s.buckets {
		if _, err := s.taskClient.Add(tasks.SweepOrphansTask{Bucket: bucket}).Save(); err != nil {
			log.Printf("Sweep scheduler: failed to enqueue orphan sweep for %s: %v", bucket, err)
		}
	}
}
