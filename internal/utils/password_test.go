package utils

import "testing"

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"guest@example.com", true},
		{"first.last+tag@mail-host.co.kr", true},
		{"under_score@example.io", true},
		{"no-at-sign.example.com", false},
		{"missing-domain@", false},
		{"@missing-local.com", false},
		{"no-tld@example", false},
		{"spaces in@example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidEmail(tt.email); got != tt.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"all three classes", "abcd123!", true},
		{"longer mixed", "S3cure?Pass!", true},
		{"too short", "ab1!", false},
		{"no digit", "abcdefg!", false},
		{"no letter", "1234567!", false},
		{"no special", "abcd1234", false},
		{"disallowed character", "abcd123! ", false},
		{"unicode rejected", "abcd123!é", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidPassword(tt.password); got != tt.want {
				t.Errorf("ValidPassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("abcd123!", 4) // min cost keeps the test fast
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "abcd123!" {
		t.Fatal("hash must not equal the plain password")
	}
	if !VerifyPassword(hash, "abcd123!") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "wrong123!") {
		t.Error("wrong password accepted")
	}
}
