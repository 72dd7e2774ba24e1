// Package auth isolates the credential check behind a small capability so the
// legacy plaintext comparison can be swapped for a salted hash without
// touching handler logic.
package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/healthhub/dashboard-api/internal/config"
)

// Verifier turns a password into its stored credential and checks a login
// attempt against a stored credential.
type Verifier interface {
	Credential(plain string) (string, error)
	Verify(stored, plain string) bool
}

// Plaintext stores passwords verbatim and compares by equality. This matches
// the legacy dashboard backend and exists for parity testing only.
type Plaintext struct{}

func (Plaintext) Credential(plain string) (string, error) { return plain, nil }

func (Plaintext) Verify(stored, plain string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) == 1
}

// Bcrypt stores salted bcrypt hashes.
type Bcrypt struct{ Cost int }

func (b Bcrypt) Credential(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), b.Cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (Bcrypt) Verify(stored, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}

// FromConfig selects the verifier for the configured AUTH_MODE.
func FromConfig(cfg config.Config) Verifier {
	if cfg.AuthMode == config.AuthModeBcrypt {
		return Bcrypt{Cost: cfg.BcryptCost}
	}
	return Plaintext{}
}
