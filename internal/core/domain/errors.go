package domain

import "errors"

var ErrTokenNotFound = errors.New("token not found")
var ErrBackendUnavailable = errors.New("backend unavailable")

// ErrAccessDenied and ErrSessionExpired are surfaced verbatim to the user, so
// they carry presentation-ready text.
var ErrAccessDenied = errors.New("Access denied")
var ErrSessionExpired = errors.New("Session expired. Please login again.")
