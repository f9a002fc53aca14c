package auth

import (
	"crypto/subtle"

	"github.com/goliatone/go-errors"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost balances hashing latency against brute-force cost.
const DefaultBcryptCost = 12

// BcryptVerifier is the default PasswordVerifier.
type BcryptVerifier struct {
	Cost int
}

var _ PasswordVerifier = BcryptVerifier{}

// Hash will generate a password hash
func (v BcryptVerifier) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty", errors.CategoryValidation)
	}

	cost := v.Cost
	if cost == 0 {
		cost = DefaultBcryptCost
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	return string(h), nil
}

// Compare will validate the given cleartext password matches the
// hashed password
func (v BcryptVerifier) Compare(password, stored string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// PlaintextVerifier matches passwords by equality against a cleartext
// store. It exists only for compatibility with legacy rows; new
// deployments should wire BcryptVerifier.
type PlaintextVerifier struct{}

var _ PasswordVerifier = PlaintextVerifier{}

func (PlaintextVerifier) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty", errors.CategoryValidation)
	}
	return password, nil
}

func (PlaintextVerifier) Compare(password, stored string) error {
	if subtle.ConstantTimeCompare([]byte(password), []byte(stored)) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}
