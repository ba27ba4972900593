package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const tokenAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// TokenLength is the length of verification and reset tokens.
const TokenLength = 60

// RandomToken generates a random alphanumeric string of the given length
// using crypto/rand.
func RandomToken(length int) (string, error) {
	alphabetSize := big.NewInt(int64(len(tokenAlphabet)))

	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to generate random token: %w", err)
		}
		b[i] = tokenAlphabet[n.Int64()]
	}

	return string(b), nil
}
