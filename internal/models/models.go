// Package models defines the wire and domain types shared by the
// GopherKeeper client and server.
package models

import "time"

// AuthRequest is the JSON body of the register and login endpoints.
type AuthRequest struct {
	// Login is the user-chosen account name.
	Login string `json:"login"`
	// Password is consumed by the call and never stored.
	Password string `json:"password"`
}

// Token is the JSON body returned by a successful login.
type Token struct {
	Token string `json:"token"`
}

// StoredSecret is the server-visible representation of a secret.
// Data is an opaque base64 blob; the server never sees plaintext.
type StoredSecret struct {
	// ID is derived from the serialized plaintext, see crypto.ContentID.
	ID string `json:"id"`
	// UserLogin is the owner of the secret.
	UserLogin string `json:"user_login"`
	// Type is the payload kind tag: "password", "note" or "card".
	Type string `json:"type"`
	// Data is the base64-encoded encrypted payload.
	Data string `json:"data"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// SyncRequest is the JSON body of the upsert endpoint.
type SyncRequest struct {
	Secrets []StoredSecret `json:"secrets"`
}

// DecryptedSecret is the local, in-memory-only view of a secret.
// It exists for the duration of an interactive session and is never
// written to disk.
type DecryptedSecret struct {
	ID      string
	Type    string
	Payload SecretPayload

	CreatedAt *time.Time
	UpdatedAt *time.Time
}
