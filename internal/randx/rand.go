// Package randx generates random identifiers from crypto/rand.
package randx

import (
	"crypto/rand"
	"fmt"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// String returns a random string of length n drawn from lowercase letters
// and digits. Resource identifiers use n=20.
func String(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}

	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("rand read: %w", err)
	}

	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}

	return string(buf), nil
}
