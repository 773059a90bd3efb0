// Package hashx derives deterministic one-way password digests.
//
// The digest is argon2id keyed by a process-wide secret: the secret acts as
// the salt, so the same plaintext always yields the same digest within a
// deployment. That determinism is what lets stored credentials be compared
// by equality without per-user salts, mirroring the keyed-hash scheme the
// rest of the system is built around.
package hashx

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/argon2"
)

var ErrEmptyInput = errors.New("plaintext and secret must be non-empty")

// Digest returns the hex-encoded argon2id digest of plaintext under secret.
func Digest(plaintext, secret string) (string, error) {
	if plaintext == "" || secret == "" {
		return "", ErrEmptyInput
	}
	sum := argon2.IDKey([]byte(plaintext), []byte(secret), 1, 64*1024, 4, 32)
	return hex.EncodeToString(sum), nil
}

// Equal compares two digests in constant time.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
