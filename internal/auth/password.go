package auth

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8
	// MaxPasswordBytes is the bcrypt input limit.
	MaxPasswordBytes = 72

	// PasswordSpecialChars lists the characters that satisfy the special character rule.
	PasswordSpecialChars = "!@#$%^&*"
)

var (
	ErrInvalidPassword  = errors.New("invalid password")
	ErrPasswordTooLong  = errors.New("password exceeds maximum length of 72 bytes")
	ErrPasswordRequired = errors.New("password is required")
)

// HashPassword creates a bcrypt hash of the password.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", ErrPasswordRequired
	}
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a password with its hash.
func CheckPassword(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}
		return err
	}
	return nil
}

// PasswordViolations returns every strength rule the password breaks, in a
// stable order. An empty result means the password is acceptable.
func PasswordViolations(password string) []string {
	var violations []string

	if len([]rune(password)) < MinPasswordLength {
		violations = append(violations, "password must be at least 8 characters long")
	}
	if len(password) > MaxPasswordBytes {
		violations = append(violations, "password must be at most 72 bytes long")
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(PasswordSpecialChars, r):
			special = true
		}
	}

	if !upper {
		violations = append(violations, "password must contain an uppercase letter")
	}
	if !lower {
		violations = append(violations, "password must contain a lowercase letter")
	}
	if !digit {
		violations = append(violations, "password must contain a number")
	}
	if !special {
		violations = append(violations, "password must contain a special character ("+PasswordSpecialChars+")")
	}
	return violations
}
