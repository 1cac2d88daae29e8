package services

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordChecker isolates how admin passwords are stored and compared.
type PasswordChecker interface {
	// Prepare turns a new password into its stored form.
	Prepare(password string) (string, error)
	// Matches reports whether password matches the stored form.
	Matches(stored, password string) bool
}

// PlaintextPasswords stores passwords as given. Demo deployments only.
type PlaintextPasswords struct{}

func (PlaintextPasswords) Prepare(password string) (string, error) { return password, nil }

func (PlaintextPasswords) Matches(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// BcryptPasswords stores bcrypt hashes.
type BcryptPasswords struct {
	Cost int
}

func (b BcryptPasswords) Prepare(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (BcryptPasswords) Matches(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// NewPasswordChecker selects a checker by mode name.
func NewPasswordChecker(mode string) (PasswordChecker, error) {
	switch mode {
	case "", "plaintext":
		return PlaintextPasswords{}, nil
	case "bcrypt":
		return BcryptPasswords{}, nil
	default:
		return nil, fmt.Errorf("unknown password mode %q", mode)
	}
}
