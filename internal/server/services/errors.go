package services

import "errors"

// Sentinel errors returned by the registries. The HTTP layer matches them
// with errors.Is and flattens them to a status and message; no cause chain
// leaves the process.
var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks an absent resource.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists marks a duplicate creation.
	ErrAlreadyExists = errors.New("already exists")

	// ErrForbidden marks a missing, invalid, expired or foreign token.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials marks a password mismatch on token issue.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired marks an extend attempt on an expired token.
	ErrTokenExpired = errors.New("token expired")

	// ErrQuotaExceeded marks a check creation over the per-user limit.
	ErrQuotaExceeded = errors.New("check quota exceeded")

	// ErrPartialCascade reports that a user was deleted but one or more of
	// its checks could not be removed. The user deletion is not rolled back.
	ErrPartialCascade = errors.New("partial cascade failure")

	// ErrOwnerUpdateFailed reports that a check was created but the owner's
	// check list could not be updated. The check is not rolled back.
	ErrOwnerUpdateFailed = errors.New("owner list update failed")

	// ErrInconsistentState reports that the user/check back-reference was
	// already broken when a cascade tried to maintain it.
	ErrInconsistentState = errors.New("inconsistent state")
)
