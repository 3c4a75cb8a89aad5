package cryptox

import (
	"testing"
)

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	t.Parallel()

	d1, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	d2, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if d1 == d2 {
		t.Fatalf("expected different digests for repeated hashing, got identical: %q", d1)
	}
	if !VerifyPassword("secret1", d1) {
		t.Fatalf("first digest does not verify")
	}
	if !VerifyPassword("secret1", d2) {
		t.Fatalf("second digest does not verify")
	}
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	t.Parallel()

	d, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if VerifyPassword("battery staple", d) {
		t.Fatalf("wrong password verified")
	}
}

func TestVerifyPassword_GarbageDigest(t *testing.T) {
	t.Parallel()

	if VerifyPassword("anything", "not-a-bcrypt-digest") {
		t.Fatalf("garbage digest verified")
	}
}

func TestHashPassword_NeverReturnsPlaintext(t *testing.T) {
	t.Parallel()

	d, err := HashPassword("visible-secret")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if d == "visible-secret" {
		t.Fatalf("digest equals plaintext")
	}
}
