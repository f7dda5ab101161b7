package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")

	// ErrInvalidSession covers both an unknown session id and an ownership
	// mismatch, so a foreign session is indistinguishable from a missing one.
	ErrInvalidSession = errors.New("invalid session")

	ErrInvalidParams    = errors.New("invalid session parameters")
	ErrSessionNotActive = errors.New("session is not active")
	ErrSessionFinalized = errors.New("session already submitted")
	ErrResultNotFound   = errors.New("result not found")
	ErrInvalidReason    = errors.New("invalid submit reason")
	ErrInvalidLanguage  = errors.New("unsupported language")
	ErrGenerationFailed = errors.New("question generation failed")
)
