package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{
			name:     "valid password",
			password: "a-long-enough-password",
			wantErr:  nil,
		},
		{
			name:     "too short",
			password: "short",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "exactly minimum length",
			password: strings.Repeat("a", MinPasswordLength),
			wantErr:  nil,
		},
		{
			name:     "exceeds bcrypt limit",
			password: strings.Repeat("a", 73),
			wantErr:  ErrPasswordTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password, 4)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("HashPassword() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if hash == tt.password {
					t.Error("hash equals plain text password")
				}
				if err := CheckPassword(tt.password, hash); err != nil {
					t.Errorf("CheckPassword() on fresh hash: %v", err)
				}
			}
		})
	}
}

func TestCheckPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("the-real-password", 4)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	err = CheckPassword("not-the-password", hash)
	if !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("CheckPassword() error = %v, want ErrInvalidPassword", err)
	}
}

func TestGenerateSessionSecret(t *testing.T) {
	first, err := GenerateSessionSecret()
	if err != nil {
		t.Fatalf("GenerateSessionSecret() error = %v", err)
	}
	if len(first) != 64 {
		t.Errorf("secret length = %d, want 64 hex chars", len(first))
	}

	second, err := GenerateSessionSecret()
	if err != nil {
		t.Fatalf("GenerateSessionSecret() error = %v", err)
	}
	if first == second {
		t.Error("two generated secrets are identical")
	}
}
