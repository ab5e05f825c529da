package backend

// Relative endpoint paths, matching the backend contract exactly.
const (
	epLogin    = "/auth/login"
	epValidate = "/auth/validate"
	epMe       = "/auth/me"
	epLogout   = "/auth/logout"

	epHealth = "/health"
	epInfo   = "/info"

	epDonations      = "/donations"
	epDonationsAll   = "/donations/all"
	epDonationsYears = "/donations/years"

	epUsersActive         = "/users/active"
	epUsersDeactivate     = "/users/deactivate"
	epUsersUpdatePassword = "/users/update-password"
)
