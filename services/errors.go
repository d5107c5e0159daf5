package services

import "errors"

// Shared errors surfaced across services and mapped to HTTP in handlers.
var (
	// Resource lookups
	ErrNotFound       = errors.New("requested resource not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrTeamNotFound   = errors.New("team not found")
	ErrPlayerNotFound = errors.New("player not found")

	// Authentication
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthenticationFailed   = errors.New("authentication failed")
	ErrAuthEmailTaken         = errors.New("email is already taken")

	// File storage
	ErrUploaderNotConfigured = errors.New("file storage is not configured")
	ErrUnsupportedFileType   = errors.New("unsupported file type")
)
