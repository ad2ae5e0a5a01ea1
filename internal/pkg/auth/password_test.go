package auth

import "testing"

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword() returned empty hash")
	}
	if hash == "correct horse battery staple" {
		t.Fatal("HashPassword() returned the plaintext")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret-pass-1")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if !CheckPassword(hash, "secret-pass-1") {
		t.Error("CheckPassword() = false for the correct password")
	}
	if CheckPassword(hash, "wrong-pass") {
		t.Error("CheckPassword() = true for a wrong password")
	}
	if CheckPassword("not-a-hash", "secret-pass-1") {
		t.Error("CheckPassword() = true for a malformed hash")
	}
}
