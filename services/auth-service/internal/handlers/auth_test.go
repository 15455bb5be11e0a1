package handlers

import (
	"testing"

	"github.com/tomide-adeyemi/salonbook/services/auth-service/internal/storage"
)

func TestPasswordHashing(t *testing.T) {
	password := "pass123"
	hash, err := hashPassword(password)
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	if hash == "" {
		t.Fatal("expected non-empty hash")
	}
	if err := verifyPassword(hash, password); err != nil {
		t.Fatalf("verifyPassword should succeed: %v", err)
	}
	if err := verifyPassword(hash, "wrong-pass"); err == nil {
		t.Fatal("verifyPassword should fail for wrong password")
	}
}

func TestIssuedTokenCarriesSalonClaims(t *testing.T) {
	signer := NewHS256Signer("test-secret")
	user := storage.User{
		ID:      "user-1",
		SalonID: "salon-1",
		Role:    "owner",
	}

	token, err := issueJWT(user, signer)
	if err != nil {
		t.Fatalf("issueJWT failed: %v", err)
	}

	claims, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.Sub != "user-1" || claims.SalonID != "salon-1" || claims.Role != "owner" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestCustomerTokenHasNoSalonClaim(t *testing.T) {
	signer := NewHS256Signer("test-secret")
	token, err := issueJWT(storage.User{ID: "user-2", Role: "customer"}, signer)
	if err != nil {
		t.Fatalf("issueJWT failed: %v", err)
	}
	claims, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.SalonID != "" {
		t.Fatalf("customer token should carry no salon_id, got %q", claims.SalonID)
	}
}
