package domain

// LoginReply is the backend payload for POST /auth/login. The top-level HTTP
// status can be 200 while Success is false; callers must check the nested flag.
type LoginReply struct {
	Success    bool   `json:"success"`
	Token      string `json:"token"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	FullName   string `json:"fullName"`
	Role       Role   `json:"role"`
	RedirectTo string `json:"redirectTo"`
	Message    string `json:"message,omitempty"`
}

// Profile builds a Profile from the login payload.
func (r LoginReply) Profile() *Profile {
	return &Profile{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		FullName:   r.FullName,
		Role:       r.Role,
		RedirectTo: r.RedirectTo,
	}
}

// ValidateReply is the backend payload for POST /auth/validate.
type ValidateReply struct {
	Valid      bool   `json:"valid"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	FullName   string `json:"fullName"`
	Role       Role   `json:"role"`
	RedirectTo string `json:"redirectTo"`
	Message    string `json:"message,omitempty"`
}

// Profile builds a Profile from the validate payload.
func (r ValidateReply) Profile() *Profile {
	return &Profile{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		FullName:   r.FullName,
		Role:       r.Role,
		RedirectTo: r.RedirectTo,
	}
}

// HealthReply is the payload of GET /health. The backend reports "UP" when
// healthy (Spring actuator convention).
type HealthReply struct {
	Status string `json:"status"`
}

// Up reports whether the payload declares the backend healthy.
func (r HealthReply) Up() bool {
	return r.Status == "UP"
}
