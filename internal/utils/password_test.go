package utils

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("ofuro-souji", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !VerifyPassword(hash, "ofuro-souji") {
		t.Error("VerifyPassword rejected the original password")
	}
	if VerifyPassword(hash, "wrong-password") {
		t.Error("VerifyPassword accepted a wrong password")
	}
}

func TestHashPasswordRejectsOverlongInput(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", 73), bcrypt.MinCost)
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("HashPassword(73 bytes) error = %v, want ErrPasswordTooLong", err)
	}
}

func TestHashPasswordFallsBackOnBadCost(t *testing.T) {
	hash, err := HashPassword("ofuro-souji", -1)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("Cost failed: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want bcrypt.DefaultCost (%d)", cost, bcrypt.DefaultCost)
	}
}
