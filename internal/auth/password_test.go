package auth

import (
	"testing"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}

	if hash == "s3cret" {
		t.Error("Hash should differ from plain password")
	}

	if err := ComparePassword(hash, "s3cret"); err != nil {
		t.Errorf("ComparePassword() should match: %v", err)
	}

	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Error("ComparePassword() should fail for wrong password")
	}
}

func TestHashPassword_Unique(t *testing.T) {
	h1, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}
	h2, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}
	if h1 == h2 {
		t.Error("bcrypt hashes should be salted and differ")
	}
}
