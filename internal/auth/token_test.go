package auth

import (
	"testing"

	"github.com/google/uuid"
)

func Test_tokenService_roundTrip(t *testing.T) {
	tokenService := NewTokenService("test-secret", 3600)

	userID := uuid.New()

	tokenStr, err := tokenService.GenerateToken(userID, RoleSeller)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	isValid, claims, err := tokenService.ValidateToken(tokenStr)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if !isValid {
		t.Fatal("expected token to be valid")
	}

	if claims.UserID != userID.String() {
		t.Errorf("got user id %q, want %q", claims.UserID, userID.String())
	}
	if claims.Role != RoleSeller {
		t.Errorf("got role %q, want %q", claims.Role, RoleSeller)
	}
}

func Test_tokenService_wrongSecret(t *testing.T) {
	tokenStr, err := NewTokenService("secret-a", 3600).GenerateToken(
		uuid.New(),
		RoleUser,
	)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	isValid, _, err := NewTokenService("secret-b", 3600).ValidateToken(tokenStr)
	if err == nil && isValid {
		t.Error("expected token signed with another secret to be rejected")
	}
}

func Test_tokenService_expiredToken(t *testing.T) {
	// negative expiry puts ExpiresAt in the past
	tokenService := NewTokenService("test-secret", -60)

	tokenStr, err := tokenService.GenerateToken(uuid.New(), RoleUser)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	isValid, _, err := tokenService.ValidateToken(tokenStr)
	if err == nil && isValid {
		t.Error("expected expired token to be rejected")
	}
}

func Test_tokenService_garbageToken(t *testing.T) {
	tokenService := NewTokenService("test-secret", 3600)

	isValid, _, err := tokenService.ValidateToken("not.a.token")
	if err == nil && isValid {
		t.Error("expected malformed token to be rejected")
	}
}
