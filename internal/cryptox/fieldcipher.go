// Package cryptox provides the symmetric cipher applied to sensitive
// credential fields before they reach the database.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// KeySize is the required length of the field encryption key (AES-256).
const KeySize = 32

// FieldCipher encrypts and decrypts individual string fields with AES-GCM
// under a single process-wide key. The key is read-only after construction,
// so a FieldCipher is safe for concurrent use.
type FieldCipher struct {
	aead cipher.AEAD
}

// NewFieldCipher builds a FieldCipher from a raw 32-byte key.
func NewFieldCipher(key []byte) (*FieldCipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("field cipher key must be %d bytes, got %d", KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &FieldCipher{aead: aead}, nil
}

// EncryptField encrypts a plaintext field value. The result is
// base64(nonce || ciphertext) with a fresh random nonce per call, so
// encrypting the same value twice yields different ciphertexts.
func (c *FieldCipher) EncryptField(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// DecryptField reverses EncryptField. It never fails: a value that is not
// valid ciphertext (legacy plaintext rows from before encryption was
// introduced) is returned unchanged. Callers see either the decrypted
// plaintext or the stored value, never an error.
func (c *FieldCipher) DecryptField(stored string) string {
	raw, err := base64.RawURLEncoding.DecodeString(stored)
	if err != nil {
		return stored
	}

	nonceSize := c.aead.NonceSize()
	if len(raw) < nonceSize+c.aead.Overhead() {
		return stored
	}

	plaintext, err := c.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return stored
	}

	return string(plaintext)
}
