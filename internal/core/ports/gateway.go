package ports

import (
	"context"

	"github.com/opendaan/donation-client/internal/core/domain"
)

// Gateway is the single point of contact with the remote backend. Every method
// returns a normalized CallResult; expected failure modes (transport errors,
// non-2xx statuses, token expiry) never surface as Go errors.
type Gateway interface {
	// Auth
	Login(ctx context.Context, name, password string) *domain.CallResult
	ValidateToken(ctx context.Context) *domain.CallResult
	CurrentUser(ctx context.Context) *domain.CallResult
	Logout(ctx context.Context) *domain.CallResult

	// System
	Health(ctx context.Context) *domain.CallResult
	AppInfo(ctx context.Context) *domain.CallResult
	// Reachable probes the health endpoint and reports whether the backend
	// answered and declared itself up.
	Reachable(ctx context.Context) bool

	// Donations
	CreateDonation(ctx context.Context, in domain.DonationInput) *domain.CallResult
	DonationsByYear(ctx context.Context, year int) *domain.CallResult
	AllDonations(ctx context.Context) *domain.CallResult
	UpdateDonation(ctx context.Context, year int, id int64, in domain.DonationInput) *domain.CallResult
	DeleteDonation(ctx context.Context, year int, id int64) *domain.CallResult
	AvailableYears(ctx context.Context) *domain.CallResult
	YearStats(ctx context.Context, year int) *domain.CallResult

	// Users (admin)
	ActiveUsers(ctx context.Context) *domain.CallResult
	DeactivateUser(ctx context.Context, firstName, lastName string) *domain.CallResult
	UpdatePassword(ctx context.Context, firstName, lastName, newPassword string) *domain.CallResult
}
