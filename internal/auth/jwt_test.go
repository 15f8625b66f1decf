package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestGenerateAndParseToken(t *testing.T) {
	userID := uuid.New()
	token, expiresAt, err := GenerateToken(testSecret, userID, "jane@example.com", "Recruiter", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Errorf("expiresAt %v is not in the future", expiresAt)
	}

	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.Email != "jane@example.com" {
		t.Errorf("Email = %q, want jane@example.com", claims.Email)
	}
	if claims.Role != "Recruiter" {
		t.Errorf("Role = %q, want Recruiter", claims.Role)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, _, err := GenerateToken(testSecret, uuid.New(), "jane@example.com", "Recruiter", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ParseToken("another-secret-another-secret-32", token); err == nil {
		t.Error("expected error for wrong secret, got nil")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, _, err := GenerateToken(testSecret, uuid.New(), "jane@example.com", "Recruiter", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ParseToken(testSecret, token); err == nil {
		t.Error("expected error for expired token, got nil")
	}
}
