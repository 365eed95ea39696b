package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SecretKind identifies the payload variant of a secret.
type SecretKind string

const (
	// KindPassword is a site credential: title, login, password, optional URL.
	KindPassword SecretKind = "password"
	// KindNote is a free-form text note.
	KindNote SecretKind = "note"
	// KindCard is a payment card: holder, number, expiry, cvv.
	KindCard SecretKind = "card"
)

// Kinds lists the supported payload variants in display order.
var Kinds = []SecretKind{KindPassword, KindNote, KindCard}

// SecretPayload is the plaintext domain object the user edits. Kind selects
// the variant; only the fields belonging to that variant are populated.
type SecretPayload struct {
	Kind  SecretKind `json:"kind"`
	Title string     `json:"title"`

	// KindPassword fields.
	Login    string `json:"login,omitempty"`
	Password string `json:"password,omitempty"`
	URL      string `json:"url,omitempty"`

	// KindNote fields.
	Content string `json:"content,omitempty"`

	// KindCard fields.
	Holder string `json:"holder,omitempty"`
	Number string `json:"number,omitempty"`
	Expiry string `json:"expiry,omitempty"`
	CVV    string `json:"cvv,omitempty"`
}

// MarshalPayload serializes a payload to its canonical text form, the exact
// bytes that are encrypted and hashed into the content id. Field order is
// fixed by the struct layout, so equal payloads always produce equal bytes.
func MarshalPayload(p SecretPayload) ([]byte, error) {
	if !knownKind(p.Kind) {
		return nil, fmt.Errorf("serialize payload: unknown kind %q", p.Kind)
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("serialize payload: %w", err)
	}
	return b, nil
}

// UnmarshalPayload parses the canonical text form back into a payload.
// Unknown fields and unknown kinds are rejected so a blob that decrypts
// cleanly but does not round-trip surfaces as an error instead of a
// half-empty payload.
func UnmarshalPayload(data []byte) (SecretPayload, error) {
	var p SecretPayload
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return SecretPayload{}, fmt.Errorf("parse payload: %w", err)
	}
	if !knownKind(p.Kind) {
		return SecretPayload{}, fmt.Errorf("parse payload: unknown kind %q", p.Kind)
	}
	return p, nil
}

func knownKind(k SecretKind) bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}
