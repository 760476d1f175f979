// Package auth provides single-admin authentication for the CMS.
//
// Two modes are supported via AUTH_MODE:
//   - "none": no authentication (local development only)
//   - "local": admin account with session cookies
//
// Sessions are stored in the database through scs; login attempts are rate
// limited per IP+username with a sliding window.
package auth

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"

	"github.com/antonbelau/folio/internal/config"
	"github.com/antonbelau/folio/internal/entities"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

var (
	ErrAdminNotFound    = errors.New("admin account not found")
	ErrAdminExists      = errors.New("admin account already exists")
	ErrAuthRequired     = errors.New("authentication required")
	ErrUsernameRequired = errors.New("username is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrUsernameInvalid  = errors.New("username must be 3-64 characters, alphanumeric and underscore/hyphen only")
	ErrEmailInvalid     = errors.New("invalid email format")
)

// Service handles authentication and admin account management.
type Service struct {
	db     *gorm.DB
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(db *gorm.DB, cfg config.Auth) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateAdmin creates the admin account. The site runs single-admin: a
// second create fails with ErrAdminExists.
func (s *Service) CreateAdmin(username, email, password string) (*entities.AdminUser, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	if !usernamePattern.MatchString(username) {
		return nil, ErrUsernameInvalid
	}
	// RFC 5321 length limit
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return nil, ErrEmailInvalid
	}

	has, err := s.HasAdmin()
	if err != nil {
		return nil, err
	}
	if has {
		return nil, ErrAdminExists
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &entities.AdminUser{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin account: %w", err)
	}

	return admin, nil
}

// Authenticate validates credentials and returns the admin account.
// username matches either the username or the email.
func (s *Service) Authenticate(username, password string) (*entities.AdminUser, error) {
	var admin entities.AdminUser
	err := s.db.Where("username = ? OR email = ?", username, username).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to find admin account: %w", err)
	}

	if err := CheckPassword(password, admin.PasswordHash); err != nil {
		return nil, err
	}

	now := time.Now()
	admin.LastLoginAt = &now
	s.db.Model(&admin).Update("last_login_at", now)

	return &admin, nil
}

// GetAdminByID retrieves the admin account by ID.
func (s *Service) GetAdminByID(id uint) (*entities.AdminUser, error) {
	var admin entities.AdminUser
	err := s.db.First(&admin, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// ChangePassword updates the admin password after verifying the old one.
func (s *Service) ChangePassword(id uint, oldPassword, newPassword string) error {
	admin, err := s.GetAdminByID(id)
	if err != nil {
		return err
	}

	if err := CheckPassword(oldPassword, admin.PasswordHash); err != nil {
		return err
	}

	newHash, err := HashPassword(newPassword, s.config.BcryptCost)
	if err != nil {
		return err
	}

	return s.db.Model(admin).Update("password_hash", newHash).Error
}

// HasAdmin returns true if the admin account exists.
func (s *Service) HasAdmin() (bool, error) {
	var count int64
	err := s.db.Model(&entities.AdminUser{}).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsAuthEnabled returns true if authentication is required.
func (s *Service) IsAuthEnabled() bool {
	return s.config.Mode == config.AuthModeLocal
}
