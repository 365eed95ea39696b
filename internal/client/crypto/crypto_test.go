package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	payloads := [][]byte{
		[]byte(`{"kind":"password","title":"mail","login":"bob","password":"hunter2"}`),
		[]byte(`{"kind":"note","title":"T","content":"C"}`),
		[]byte(`{"kind":"card","title":"visa","holder":"BOB","number":"4111111111111111","expiry":"12/28","cvv":"123"}`),
		[]byte(""),
	}

	for _, plain := range payloads {
		blob, err := Encrypt(plain, "master-pass")
		require.NoError(t, err)

		got, err := Decrypt(blob, "master-pass")
		require.NoError(t, err)
		assert.Equal(t, plain, got)
	}
}

func TestDecryptWrongPassword(t *testing.T) {
	blob, err := Encrypt([]byte("top secret"), "right-password")
	require.NoError(t, err)

	_, err = Decrypt(blob, "wrong-password")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestEncryptFreshNonces(t *testing.T) {
	// Identical input must never yield identical blobs: every call draws a
	// fresh random nonce.
	first, err := Encrypt([]byte("same plaintext"), "pw")
	require.NoError(t, err)
	second, err := Encrypt([]byte("same plaintext"), "pw")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDecryptMalformed(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"shorter than nonce", base64.StdEncoding.EncodeToString([]byte("short"))},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt(tt.blob, "pw")
			assert.ErrorIs(t, err, ErrMalformedCiphertext)
		})
	}
}

func TestDecryptTamperedBlob(t *testing.T) {
	blob, err := Encrypt([]byte("payload"), "pw")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(blob)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff

	_, err = Decrypt(base64.StdEncoding.EncodeToString(raw), "pw")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestDeriveKeyDeterministic(t *testing.T) {
	assert.Equal(t, DeriveKey("pw"), DeriveKey("pw"))
	assert.NotEqual(t, DeriveKey("pw"), DeriveKey("pw2"))
}

func TestContentID(t *testing.T) {
	id := ContentID([]byte("some payload"))
	assert.Len(t, id, 32) // 16 bytes as hex
	assert.Equal(t, id, ContentID([]byte("some payload")))
	assert.NotEqual(t, id, ContentID([]byte("other payload")))
}
