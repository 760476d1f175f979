package audit

import (
	"encoding/json"
	"log"
	"time"

	"github.com/antonbelau/folio/internal/database/audit"
	"github.com/antonbelau/folio/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// LogSignedURL records the creation of a signed resume URL.
func (s *Service) LogSignedURL(resumeID uint, storageKey string, expiry time.Duration, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventSignedURL,
		Action:      "resume_signed_url",
		Description: "Signed URL created for " + storageKey,
		EntityType:  "resume",
		EntityID:    &resumeID,
		Status:      entities.AuditStatusSuccess,
	}

	metadata := map[string]any{
		"storage_key":    storageKey,
		"expiry_seconds": int(expiry.Seconds()),
	}
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogDownloadRequested records a resume download request with its vertical.
func (s *Service) LogDownloadRequested(resumeID uint, vertical string) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventDownload,
		Action:      "resume_download_requested",
		Description: "Resume download requested (" + vertical + ")",
		EntityType:  "resume",
		EntityID:    &resumeID,
		Status:      entities.AuditStatusSuccess,
	}

	if mdBytes, e := json.Marshal(map[string]any{"vertical": vertical}); e == nil {
		event.Metadata = string(mdBytes)
	}

	s.LogAsync(event)
}

// LogImport records a bulk import run.
func (s *Service) LogImport(source, description string, processed, failed int, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventImport,
		Action:      source + "_import",
		Description: description,
		Status:      entities.AuditStatusSuccess,
	}

	metadata := map[string]any{
		"processed": processed,
		"failed":    failed,
	}
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	// Imports run from short-lived CLI processes, so this one logs
	// synchronously instead of via LogAsync.
	if logErr := s.Log(event); logErr != nil {
		log.Printf("Failed to log import audit event: %v", logErr)
	}
}

// LogDelete records a deletion event.
func (s *Service) LogDelete(entityType string, entityID uint, entityName string, permanent bool) {
	action := entityType + "_delete"
	if permanent {
		action = entityType + "_delete_permanent"
	}

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventDelete,
		Action:      action,
		Description: "Deleted " + entityType + ": " + entityName,
		EntityType:  entityType,
		EntityID:    &entityID,
		Status:      entities.AuditStatusSuccess,
	}

	s.LogAsync(event)
}

// LogAuth records an authentication event.
func (s *Service) LogAuth(action, ipAddr string, success bool) {
	event := &entities.AuditEvent{
		EventType: entities.AuditEventAuth,
		Action:    action,
		IPAddress: ipAddr,
		Status:    entities.AuditStatusSuccess,
	}

	if !success {
		event.Status = entities.AuditStatusFailed
	}

	s.LogAsync(event)
}

// LogSettings records a settings change event.
func (s *Service) LogSettings(action, description string) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventSettings,
		Action:      action,
		Description: description,
		Status:      entities.AuditStatusSuccess,
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(limit, offset)
}

// GetEventsByType retrieves audit events filtered by type.
func (s *Service) GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsByType(eventType, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
