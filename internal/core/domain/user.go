package domain

// Role is the authorization tier assigned by the backend.
//
// Roles are compared by exact equality only; there is no hierarchy
// (a USER is not "more" than a DONOR).
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
	RoleDonor Role = "DONOR"
)

// Profile describes the authenticated user as reported by the backend.
type Profile struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	FullName   string `json:"fullName"` // firstName_lastName, the backend's login identifier
	Role       Role   `json:"role"`
	RedirectTo string `json:"redirectTo,omitempty"` // backend-suggested landing screen
}

// DisplayName returns the human-readable name ("First Last").
func (p Profile) DisplayName() string {
	if p.FirstName == "" && p.LastName == "" {
		return p.FullName
	}
	return p.FirstName + " " + p.LastName
}

// IsAdmin reports whether the profile carries the ADMIN role.
func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Session is a point-in-time snapshot of authentication state.
//
// Invariant: User is non-nil if and only if Authenticated is true.
// RenderKey only ever increases for the lifetime of the process; the
// presentation layer uses it as a generation counter to discard cached
// role-specific view trees after an authentication transition.
type Session struct {
	Authenticated    bool
	User             *Profile
	Loading          bool
	RenderKey        uint64
	BackendReachable bool
}

// ActiveUser is one row of the admin user listing.
type ActiveUser struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        Role   `json:"role"`
	Active      bool   `json:"isActive"`
}
