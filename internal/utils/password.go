package utils

import (
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares a bcrypt hash and a plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9+\-_.]+@[a-zA-Z0-9\-]+\.[a-zA-Z0-9\-.]+$`)

// ValidEmail reports whether the address has the accepted shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPassword enforces the signup password policy: at least eight
// characters drawn from letters, digits and ?!@#$%*&, with at least
// one letter, one digit and one special character.  Go's regexp has no
// lookahead, so the class checks are explicit.
func ValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasLetter, hasDigit, hasSpecial bool
	for _, c := range password {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			hasLetter = true
		case c >= '0' && c <= '9':
			hasDigit = true
		case strings.ContainsRune("?!@#$%*&", c):
			hasSpecial = true
		default:
			return false
		}
	}
	return hasLetter && hasDigit && hasSpecial
}
