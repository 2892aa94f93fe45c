package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default cost for bcrypt hashing
	DefaultCost = bcrypt.DefaultCost
)

var (
	ErrInvalidPassword   = errors.New("invalid password")
	ErrEmptyPassword     = errors.New("password cannot be empty")
	ErrHashingPassword   = errors.New("error hashing password")
	ErrVerifyingPassword = errors.New("error verifying password")
)

// Match tells which stored hash accepted a password.
type Match int

const (
	MatchNone Match = iota
	MatchCurrent
	MatchLegacy
)

// Hash generates a bcrypt hash of the password
func Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}

	return string(bytes), nil
}

// Verify checks if the provided password matches the hash
func Verify(password, hash string) error {
	if password == "" || hash == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}

		return fmt.Errorf("%w: %w", ErrVerifyingPassword, err)
	}

	return nil
}

// VerifyWithLegacy checks the current hash first and then the legacy hash
// carried over from the previous admin store. A nil legacy hash disables the
// fallback.
func VerifyWithLegacy(password, current string, legacy *string) (Match, error) {
	err := Verify(password, current)
	if err == nil {
		return MatchCurrent, nil
	}

	if !errors.Is(err, ErrInvalidPassword) && current != "" {
		return MatchNone, err
	}

	if legacy == nil || *legacy == "" {
		return MatchNone, ErrInvalidPassword
	}

	if err := Verify(password, *legacy); err != nil {
		return MatchNone, err
	}

	return MatchLegacy, nil
}
