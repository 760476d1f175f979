package contact

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/antonbelau/folio/internal/database/contacts"
	"github.com/antonbelau/folio/internal/entities"
)

type fakeVerifier struct {
	fail   bool
	called bool
	token  string
}

func (f *fakeVerifier) Verify(_ context.Context, token, _ string) error {
	f.called = true
	f.token = token
	if f.fail {
		return errors.New("token rejected")
	}
	return nil
}

type fakeNotifier struct {
	notified []*entities.ContactRequest
}

func (f *fakeNotifier) NotifyNewContact(_ context.Context, req *entities.ContactRequest) {
	f.notified = append(f.notified, req)
}

func setupService(t *testing.T, verifier Verifier, active bool, notifier Notifier) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.ContactRequest{}, &entities.ContactLink{})
	require.NoError(t, err)

	return NewService(contacts.NewRepository(db), verifier, active, notifier), db
}

func validSubmission() Submission {
	return Submission{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Company: "Analytical Engines Ltd",
		Message: "I would like to discuss a potential collaboration on a compiler project.",
	}
}

func TestSubmit(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, db := setupService(t, nil, false, notifier)

	req, err := svc.Submit(context.Background(), validSubmission(), "203.0.113.9")
	require.NoError(t, err)
	assert.NotEmpty(t, req.PublicID)

	var saved entities.ContactRequest
	require.NoError(t, db.First(&saved).Error)
	assert.Equal(t, "Ada Lovelace", saved.Name)
	assert.Equal(t, req.PublicID, saved.PublicID)

	require.Len(t, notifier.notified, 1)
	assert.Equal(t, req.PublicID, notifier.notified[0].PublicID)
}

func TestSubmit_Validation(t *testing.T) {
	svc, db := setupService(t, nil, false, nil)

	cases := []struct {
		name    string
		mutate  func(*Submission)
		wantErr error
	}{
		{"short name", func(s *Submission) { s.Name = "A" }, ErrInvalidName},
		{"blank name", func(s *Submission) { s.Name = "   " }, ErrInvalidName},
		{"bad email", func(s *Submission) { s.Email = "not-an-email" }, ErrInvalidEmail},
		{"empty email", func(s *Submission) { s.Email = "" }, ErrInvalidEmail},
		{"short message", func(s *Submission) { s.Message = "too short" }, ErrInvalidMessage},
		{"oversized message", func(s *Submission) { s.Message = strings.Repeat("x", 10001) }, ErrTooLong},
		{"oversized name", func(s *Submission) { s.Name = strings.Repeat("x", 257) }, ErrTooLong},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := validSubmission()
			tc.mutate(&sub)

			_, err := svc.Submit(context.Background(), sub, "")
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	// Rejections leave no rows behind.
	var count int64
	require.NoError(t, db.Model(&entities.ContactRequest{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmit_TurnstileActive(t *testing.T) {
	t.Run("passes token through", func(t *testing.T) {
		verifier := &fakeVerifier{}
		svc, _ := setupService(t, verifier, true, nil)

		sub := validSubmission()
		sub.TurnstileToken = "the-token"

		_, err := svc.Submit(context.Background(), sub, "203.0.113.9")
		require.NoError(t, err)
		assert.True(t, verifier.called)
		assert.Equal(t, "the-token", verifier.token)
	})

	t.Run("rejects on verification failure without writing", func(t *testing.T) {
		verifier := &fakeVerifier{fail: true}
		svc, db := setupService(t, verifier, true, nil)

		_, err := svc.Submit(context.Background(), validSubmission(), "")
		require.ErrorIs(t, err, ErrNotHuman)

		var count int64
		require.NoError(t, db.Model(&entities.ContactRequest{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("skips verifier when inactive", func(t *testing.T) {
		verifier := &fakeVerifier{fail: true}
		svc, _ := setupService(t, verifier, false, nil)

		_, err := svc.Submit(context.Background(), validSubmission(), "")
		assert.NoError(t, err)
		assert.False(t, verifier.called)
	})
}

func TestListRequests(t *testing.T) {
	svc, _ := setupService(t, nil, false, nil)

	for i := 0; i < 3; i++ {
		_, err := svc.Submit(context.Background(), validSubmission(), "")
		require.NoError(t, err)
	}

	requests, total, err := svc.ListRequests(2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, requests, 2)
}
