package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessToken(t *testing.T) {
	const secret = "test-secret"
	at, err := NewAccessToken(secret, 42, 30)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	parsed, err := jwt.Parse(at.Token, func(tok *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not parse back: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not a map")
	}
	if uid, ok := claims["user_id"].(float64); !ok || uint64(uid) != 42 {
		t.Errorf("user_id claim = %v, want 42", claims["user_id"])
	}
	if time.Until(at.Exp) <= 0 {
		t.Errorf("Exp = %v, want a future time", at.Exp)
	}

	if _, err := jwt.Parse(at.Token, func(tok *jwt.Token) (any, error) {
		return []byte("other-secret"), nil
	}); err == nil {
		t.Error("token verified under the wrong secret")
	}
}

func TestNewRefreshToken(t *testing.T) {
	a, err := NewRefreshToken(14)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	b, err := NewRefreshToken(14)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if len(a.Raw) != 96 {
		t.Errorf("Raw length = %d, want 96", len(a.Raw))
	}
	if a.Raw == b.Raw {
		t.Error("two refresh tokens must not collide")
	}
}

func TestHashRefreshRaw(t *testing.T) {
	h1 := HashRefreshRaw("token-a")
	h2 := HashRefreshRaw("token-a")
	if h1 != h2 {
		t.Error("hash must be deterministic")
	}
	if h1 == HashRefreshRaw("token-b") {
		t.Error("distinct tokens must hash differently")
	}
	if len(h1) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(h1))
	}
}

func TestNewReservationCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := NewReservationCode()
		if err != nil {
			t.Fatalf("NewReservationCode: %v", err)
		}
		if len(code) != ReservationCodeLength {
			t.Fatalf("code length = %d, want %d", len(code), ReservationCodeLength)
		}
		if seen[code] {
			t.Fatalf("duplicate code generated: %s", code)
		}
		seen[code] = true
	}
}
