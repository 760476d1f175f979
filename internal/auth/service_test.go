package auth

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/antonbelau/folio/internal/config"
	"github.com/antonbelau/folio/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&entities.AdminUser{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestService_CreateAdmin(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "valid admin",
			username: "admin",
			email:    "admin@example.com",
			password: "password12345",
			wantErr:  nil,
		},
		{
			name:     "missing username",
			username: "",
			email:    "admin@example.com",
			password: "password12345",
			wantErr:  ErrUsernameRequired,
		},
		{
			name:     "missing email",
			username: "admin",
			email:    "",
			password: "password12345",
			wantErr:  ErrEmailRequired,
		},
		{
			name:     "missing password",
			username: "admin",
			email:    "admin@example.com",
			password: "",
			wantErr:  ErrPasswordRequired,
		},
		{
			name:     "username too short",
			username: "ab",
			email:    "admin@example.com",
			password: "password12345",
			wantErr:  ErrUsernameInvalid,
		},
		{
			name:     "username with spaces",
			username: "my admin",
			email:    "admin@example.com",
			password: "password12345",
			wantErr:  ErrUsernameInvalid,
		},
		{
			name:     "invalid email",
			username: "admin",
			email:    "not-an-email",
			password: "password12345",
			wantErr:  ErrEmailInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			svc := NewService(db, config.Auth{BcryptCost: 4})

			admin, err := svc.CreateAdmin(tt.username, tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateAdmin() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if admin == nil {
					t.Fatal("expected admin, got nil")
				}
				if admin.Username != tt.username {
					t.Errorf("username = %q, want %q", admin.Username, tt.username)
				}
				if admin.PasswordHash == tt.password {
					t.Error("password stored in plain text")
				}
			}
		})
	}
}

func TestService_CreateAdmin_SingleAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 4})

	if _, err := svc.CreateAdmin("admin", "admin@example.com", "password12345"); err != nil {
		t.Fatalf("first CreateAdmin() error = %v", err)
	}

	_, err := svc.CreateAdmin("other", "other@example.com", "password12345")
	if !errors.Is(err, ErrAdminExists) {
		t.Fatalf("second CreateAdmin() error = %v, want ErrAdminExists", err)
	}
}

func TestService_Authenticate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 4})

	created, err := svc.CreateAdmin("admin", "admin@example.com", "correct-password")
	if err != nil {
		t.Fatalf("CreateAdmin() error = %v", err)
	}

	t.Run("valid by username", func(t *testing.T) {
		admin, err := svc.Authenticate("admin", "correct-password")
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if admin.ID != created.ID {
			t.Errorf("admin ID = %d, want %d", admin.ID, created.ID)
		}
		if admin.LastLoginAt == nil {
			t.Error("expected last_login_at to be set")
		}
	})

	t.Run("valid by email", func(t *testing.T) {
		admin, err := svc.Authenticate("admin@example.com", "correct-password")
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if admin.ID != created.ID {
			t.Errorf("admin ID = %d, want %d", admin.ID, created.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := svc.Authenticate("admin", "wrong-password"); err == nil {
			t.Fatal("expected error for wrong password")
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Authenticate("nobody", "correct-password")
		if !errors.Is(err, ErrAdminNotFound) {
			t.Fatalf("Authenticate() error = %v, want ErrAdminNotFound", err)
		}
	})
}

func TestService_ChangePassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 4})

	admin, err := svc.CreateAdmin("admin", "admin@example.com", "old-password-123")
	if err != nil {
		t.Fatalf("CreateAdmin() error = %v", err)
	}

	if err := svc.ChangePassword(admin.ID, "wrong-old", "new-password-123"); err == nil {
		t.Fatal("expected error with wrong old password")
	}

	if err := svc.ChangePassword(admin.ID, "old-password-123", "new-password-123"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}

	if _, err := svc.Authenticate("admin", "old-password-123"); err == nil {
		t.Fatal("old password still accepted")
	}
	if _, err := svc.Authenticate("admin", "new-password-123"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestService_IsAuthEnabled(t *testing.T) {
	db := setupTestDB(t)

	if NewService(db, config.Auth{Mode: config.AuthModeNone}).IsAuthEnabled() {
		t.Error("auth should be disabled in none mode")
	}
	if !NewService(db, config.Auth{Mode: config.AuthModeLocal}).IsAuthEnabled() {
		t.Error("auth should be enabled in local mode")
	}
}
