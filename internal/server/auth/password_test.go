package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_NeverStoresPlaintext(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "secret1" {
		t.Fatalf("hash must not equal the plaintext")
	}
}

func TestCheckPassword_ExactMatchOnly(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if !CheckPassword(hash, "secret1") {
		t.Fatalf("expected verification to succeed for the original plaintext")
	}

	// every 1-character variant must fail
	variants := []string{"Secret1", "secret2", "secret", "secret11", "zecret1", "secret1 "}
	for _, v := range variants {
		if CheckPassword(hash, v) {
			t.Fatalf("expected verification to fail for variant %q", v)
		}
	}
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("secret1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("secret1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password must differ (random salt)")
	}
}
