package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/user/grantflow-go/apperror"
)

// passwordSymbols is the punctuation set a password must draw at least one
// character from.
const passwordSymbols = "!@#$%^&*()_-+=<>?/[]{}|.,'`~\"\\"

// minPasswordLength is the lower bound on password length.
const minPasswordLength = 8

// dummyHash is a bcrypt hash of a throwaway value. Login compares against it
// when the username is unknown so that unknown-user and wrong-password
// failures have comparable latency and stay indistinguishable to the caller.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("grantflow-dummy-password"), bcrypt.DefaultCost)

// ValidatePasswordStrength checks the registration strength policy:
// minimum length, at least one uppercase letter, one lowercase letter, one
// digit, and one symbol from passwordSymbols. All five conditions must hold.
// The returned error names every unmet condition so the caller can fix them
// in one round trip.
func ValidatePasswordStrength(password string) error {
	var reasons []string

	if len(password) < minPasswordLength {
		reasons = append(reasons, "must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
		if strings.ContainsRune(passwordSymbols, c) {
			hasSymbol = true
		}
	}

	if !hasUpper {
		reasons = append(reasons, "must contain at least one uppercase letter")
	}
	if !hasLower {
		reasons = append(reasons, "must contain at least one lowercase letter")
	}
	if !hasDigit {
		reasons = append(reasons, "must contain at least one digit")
	}
	if !hasSymbol {
		reasons = append(reasons, "must contain at least one symbol")
	}

	if len(reasons) > 0 {
		return apperror.NewValidationError("password "+strings.Join(reasons, "; "), nil)
	}
	return nil
}

// HashPassword derives a salted one-way hash from the plaintext password.
// The plaintext is never stored and cannot be recovered from the hash.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperror.NewInternalError("failed to hash password", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
