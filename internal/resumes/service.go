// Package resumes issues short-lived signed download URLs for the private
// resume bucket.
package resumes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/antonbelau/folio/internal/audit"
	"github.com/antonbelau/folio/internal/database/resumes"
	"github.com/antonbelau/folio/internal/entities"
)

// DefaultExpiry is how long a signed URL stays valid when the caller does
// not ask for a specific duration.
const DefaultExpiry = 120 * time.Second

var (
	ErrNoActiveResume = errors.New("no active resume for vertical")
	ErrNotConfigured  = errors.New("resume downloads require storage service credentials")
)

// URLSigner is the slice of the storage client the service needs.
type URLSigner interface {
	Configured() bool
	PresignedGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
	ResumesBucket() string
}

type Service struct {
	repo   *resumes.Repository
	signer URLSigner
	audit  *audit.Service
}

func NewService(repo *resumes.Repository, signer URLSigner, auditSvc *audit.Service) *Service {
	return &Service{
		repo:   repo,
		signer: signer,
		audit:  auditSvc,
	}
}

// SignedURL issues a time-limited download URL for a resume. Fails fast when
// storage credentials are absent. Records one audit event for the URL
// creation and a second download-requested event tagged with the vertical.
func (s *Service) SignedURL(ctx context.Context, resume *entities.Resume, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}

	if !s.signer.Configured() {
		s.audit.LogSignedURL(resume.ID, resume.StorageKey, expiry, ErrNotConfigured)
		return "", ErrNotConfigured
	}

	url, err := s.signer.PresignedGet(ctx, s.signer.ResumesBucket(), resume.StorageKey, expiry)
	if err != nil {
		s.audit.LogSignedURL(resume.ID, resume.StorageKey, expiry, err)
		return "", fmt.Errorf("failed to sign resume URL: %w", err)
	}

	s.audit.LogSignedURL(resume.ID, resume.StorageKey, expiry, nil)
	s.audit.LogDownloadRequested(resume.ID, resume.Vertical)

	return url, nil
}

// SignedURLForVertical resolves the active resume of a vertical and signs
// its download URL.
func (s *Service) SignedURLForVertical(ctx context.Context, vertical string, expiry time.Duration) (string, error) {
	resume, err := s.repo.GetActiveByVertical(vertical)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrNoActiveResume, vertical, err)
	}
	return s.SignedURL(ctx, resume, expiry)
}

// Get returns a resume by id.
func (s *Service) Get(id uint) (*entities.Resume, error) {
	return s.repo.GetByID(id)
}

// List returns all resumes.
func (s *Service) List() ([]entities.Resume, error) {
	return s.repo.List()
}

// Save persists a resume, deactivating siblings in the same vertical when
// this one becomes active.
func (s *Service) Save(resume *entities.Resume) error {
	return s.repo.Save(resume)
}

// Delete removes a resume row. The stored object is kept: resume files are
// uploaded out of band and may be shared between rows.
func (s *Service) Delete(id uint) error {
	resume, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.audit.LogDelete("resume", id, resume.Label, true)
	return nil
}
