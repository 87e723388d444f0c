package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret!")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}

	if hash == "Sup3rSecret!" {
		t.Fatal("hash equals the plaintext password")
	}
	if !CheckPassword(hash, "Sup3rSecret!") {
		t.Error("CheckPassword() = false for correct password")
	}
	if CheckPassword(hash, "WrongPassword1!") {
		t.Error("CheckPassword() = true for wrong password")
	}
}

func TestHashPasswordSalts(t *testing.T) {
	h1, err := HashPassword("same-input")
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashPassword("same-input")
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical, expected salted hashes")
	}
}
