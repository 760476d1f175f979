// Package contact handles public contact-form submissions: validation,
// anti-abuse verification, persistence, and best-effort notification fan-out.
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/antonbelau/folio/internal/database/contacts"
	"github.com/antonbelau/folio/internal/entities"
)

const (
	minNameLength    = 2
	minMessageLength = 20
	maxFieldLength   = 256
	maxMessageLength = 10000
)

var (
	ErrInvalidName    = errors.New("name must be at least 2 characters")
	ErrInvalidEmail   = errors.New("a valid email address is required")
	ErrInvalidMessage = errors.New("message must be at least 20 characters")
	ErrTooLong        = errors.New("field exceeds maximum length")
	ErrNotHuman       = errors.New("anti-abuse verification failed")
)

// Verifier abstracts the Turnstile client. nil token checks are the
// verifier's concern; the service only calls it when active.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// Notifier is the dispatcher's contact hook. Best effort: implementations
// never return errors.
type Notifier interface {
	NotifyNewContact(ctx context.Context, req *entities.ContactRequest)
}

// Submission is the raw form input.
type Submission struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Company        string `json:"company"`
	Message        string `json:"message"`
	TurnstileToken string `json:"turnstile_token"`
}

type Service struct {
	repo           *contacts.Repository
	verifier       Verifier
	verifierActive bool
	notifier       Notifier
}

func NewService(repo *contacts.Repository, verifier Verifier, verifierActive bool, notifier Notifier) *Service {
	return &Service{
		repo:           repo,
		verifier:       verifier,
		verifierActive: verifierActive,
		notifier:       notifier,
	}
}

// Submit validates and stores a contact request, then fans out
// notifications. Validation failures and verification failures reject the
// submission before any write; notification failures never surface.
func (s *Service) Submit(ctx context.Context, sub Submission, remoteIP string) (*entities.ContactRequest, error) {
	req, err := validate(sub)
	if err != nil {
		return nil, err
	}

	if s.verifierActive {
		if err := s.verifier.Verify(ctx, sub.TurnstileToken, remoteIP); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotHuman, err)
		}
	}

	if err := s.repo.CreateRequest(req); err != nil {
		return nil, fmt.Errorf("failed to save contact request: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyNewContact(ctx, req)
	}

	return req, nil
}

// ListRequests returns stored submissions for the admin inbox.
func (s *Service) ListRequests(limit, offset int) ([]entities.ContactRequest, int64, error) {
	return s.repo.ListRequests(limit, offset)
}

func validate(sub Submission) (*entities.ContactRequest, error) {
	name := strings.TrimSpace(sub.Name)
	email := strings.TrimSpace(sub.Email)
	company := strings.TrimSpace(sub.Company)
	message := strings.TrimSpace(sub.Message)

	if len(name) < minNameLength {
		return nil, ErrInvalidName
	}
	if len(name) > maxFieldLength || len(email) > maxFieldLength || len(company) > maxFieldLength {
		return nil, ErrTooLong
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(message) < minMessageLength {
		return nil, ErrInvalidMessage
	}
	if len(message) > maxMessageLength {
		return nil, ErrTooLong
	}

	return &entities.ContactRequest{
		Name:    name,
		Email:   email,
		Company: company,
		Message: message,
	}, nil
}
