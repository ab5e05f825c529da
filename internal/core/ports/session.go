package ports

import (
	"context"

	"github.com/opendaan/donation-client/internal/core/domain"
)

// SessionReader is the read side of the session state, consumed by services
// that gate operations on the current role and by the presentation layer.
type SessionReader interface {
	Snapshot() domain.Session
	IsAdmin() bool
	HasRole(role domain.Role) bool
}

// SessionControl extends SessionReader with the forced-logout path other
// services cascade into when the backend reports token expiry.
type SessionControl interface {
	SessionReader
	Logout(ctx context.Context) error
}
