package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadRoundTrip(t *testing.T) {
	payloads := []SecretPayload{
		{Kind: KindPassword, Title: "mail", Login: "bob", Password: "hunter2", URL: "https://mail.example.com"},
		{Kind: KindPassword, Title: "no-url", Login: "bob", Password: "x"},
		{Kind: KindNote, Title: "T", Content: "C"},
		{Kind: KindCard, Title: "visa", Holder: "BOB B", Number: "4111111111111111", Expiry: "12/28", CVV: "123"},
	}

	for _, p := range payloads {
		data, err := MarshalPayload(p)
		require.NoError(t, err)

		got, err := UnmarshalPayload(data)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestMarshalPayloadDeterministic(t *testing.T) {
	p := SecretPayload{Kind: KindNote, Title: "T", Content: "C"}

	first, err := MarshalPayload(p)
	require.NoError(t, err)
	second, err := MarshalPayload(p)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMarshalPayloadUnknownKind(t *testing.T) {
	_, err := MarshalPayload(SecretPayload{Kind: "ssh-key", Title: "T"})
	assert.Error(t, err)
}

func TestUnmarshalPayloadRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "not json at all"},
		{"unknown kind", `{"kind":"wallet","title":"T"}`},
		{"unknown field", `{"kind":"note","title":"T","extra":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalPayload([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
