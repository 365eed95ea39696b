// Package crypto converts secret payloads to and from opaque ciphertext
// blobs under a user-held master password. All functions are pure; no key
// material is retained between calls.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
)

// NonceSize is the AES-GCM nonce length prepended to every ciphertext.
const NonceSize = 12

var (
	// ErrMalformedCiphertext marks a blob that is not valid base64 or is
	// shorter than the nonce.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")
	// ErrAuthenticationFailed marks an AEAD tag mismatch: wrong master
	// password or corrupted data. The two cases are indistinguishable.
	ErrAuthenticationFailed = errors.New("decryption failed: wrong password or corrupted data")
)

// DeriveKey derives the symmetric key from the master password. The
// derivation is deterministic and unsalted: every secret encrypted under a
// given password shares one key, so changing the password orphans earlier
// ciphertexts unless they are re-encrypted.
func DeriveKey(masterPassword string) [32]byte {
	return sha256.Sum256([]byte(masterPassword))
}

func newAEAD(masterPassword string) (cipher.AEAD, error) {
	key := DeriveKey(masterPassword)
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create AEAD: %w", err)
	}
	return aead, nil
}

// Encrypt seals plaintext under the master password and returns
// base64(nonce || ciphertext). A fresh random nonce is drawn per call.
func Encrypt(plaintext []byte, masterPassword string) (string, error) {
	aead, err := newAEAD(masterPassword)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. It returns ErrMalformedCiphertext for blobs that
// cannot be framed and ErrAuthenticationFailed when the tag check fails.
func Decrypt(blob string, masterPassword string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64", ErrMalformedCiphertext)
	}
	aead, err := newAEAD(masterPassword)
	if err != nil {
		return nil, err
	}
	if len(raw) < aead.NonceSize() {
		return nil, fmt.Errorf("%w: blob shorter than nonce", ErrMalformedCiphertext)
	}
	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plain, nil
}

// ContentID returns the deterministic identifier of a serialized payload:
// the first 16 bytes of its SHA-256 digest in hex. Identical plaintexts
// collide on purpose; the id is a stable key, not a security property.
func ContentID(plaintext []byte) string {
	sum := sha256.Sum256(plaintext)
	return hex.EncodeToString(sum[:16])
}
