package models

import "errors"

// Domain errors shared by services, repositories and handlers.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSecretNotFound     = errors.New("secret not found")
)
