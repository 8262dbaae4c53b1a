package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare_RoundTrip(t *testing.T) {
	t.Parallel()

	hashed, err := HashPassword("pw1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hashed == "pw1" {
		t.Fatalf("hash equals plaintext")
	}

	if err := ComparePassword(hashed, "pw1"); err != nil {
		t.Fatalf("ComparePassword mismatch for correct password: %v", err)
	}
}

func TestComparePassword_WrongPassword(t *testing.T) {
	t.Parallel()

	hashed, err := HashPassword("pw1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if err := ComparePassword(hashed, "pw2"); err == nil {
		t.Fatalf("expected error for wrong password, got nil")
	}
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("pw1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	second, err := HashPassword("pw1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if first == second {
		t.Fatalf("expected salted hashes to differ")
	}
}
