package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/opendaan/donation-client/internal/core/domain"
	"github.com/opendaan/donation-client/internal/core/ports"
)

// User-facing messages produced by session operations.
const (
	msgLoginRequired   = "Name and password are required"
	msgLoginNameFormat = "Name must be in the format 'FirstName_LastName'"
	msgBackendDown     = "Backend is not available. Please try again later."
	msgLoginFailed     = "Login failed. Please try again."
)

// LoginOutcome is what a login attempt reports back to the presentation layer.
type LoginOutcome struct {
	Success    bool
	Error      string
	User       *domain.Profile
	RedirectTo string
}

// SessionService owns authentication state and translates gateway results into
// state transitions. It is the single writer of the session.
//
// The mutex guards field access only and is never held across a network
// round-trip, so two overlapping login attempts are not serialised; a stale
// response can still overwrite newer state. The UI is expected to disable the
// trigger while an attempt is in flight.
type SessionService struct {
	gateway  ports.Gateway
	tokens   ports.TokenStore
	validate *validator.Validate
	log      zerolog.Logger

	mu            sync.Mutex
	authenticated bool
	user          *domain.Profile
	loading       bool
	renderKey     uint64
	reachable     bool
}

// NewSessionService creates a session in the Loading state. Call Restore once
// at startup to leave it.
func NewSessionService(gateway ports.Gateway, tokens ports.TokenStore, log zerolog.Logger) *SessionService {
	v := validator.New()
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("login_name", validLoginName)
	return &SessionService{
		gateway:  gateway,
		tokens:   tokens,
		validate: v,
		log:      log,
		loading:  true,
	}
}

type loginInput struct {
	Name     string `validate:"required,login_name"`
	Password string `validate:"required"`
}

// validLoginName accepts the compound FirstName_LastName identifier: exactly
// two non-empty parts around a single underscore.
func validLoginName(fl validator.FieldLevel) bool {
	parts := strings.Split(fl.Field().String(), "_")
	return len(parts) == 2 && parts[0] != "" && parts[1] != ""
}

// Restore runs the startup rehydration sequence exactly once per process
// start: probe reachability, then validate the stored token. An unreachable
// backend short-circuits to Unauthenticated without touching the token — the
// offline-degradation path.
func (s *SessionService) Restore(ctx context.Context) {
	reachable := s.gateway.Reachable(ctx)
	if !reachable {
		s.log.Warn().Msg("backend unreachable, skipping session restore")
		s.finishRestore(nil, false)
		return
	}

	res := s.gateway.ValidateToken(ctx)
	if !res.Success {
		if !res.TokenExpired {
			// A 401 already purged the token at the gateway boundary.
			if err := s.tokens.Remove(ctx); err != nil {
				s.log.Error().Err(err).Msg("failed to remove stale token")
			}
		}
		s.finishRestore(nil, true)
		return
	}

	var reply domain.ValidateReply
	if err := res.Decode(&reply); err != nil || !reply.Valid {
		if err := s.tokens.Remove(ctx); err != nil {
			s.log.Error().Err(err).Msg("failed to remove stale token")
		}
		s.finishRestore(nil, true)
		return
	}

	s.log.Info().Str("user", reply.FullName).Str("role", string(reply.Role)).Msg("session restored")
	s.finishRestore(reply.Profile(), true)
}

func (s *SessionService) finishRestore(user *domain.Profile, reachable bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.authenticated = user != nil
	s.loading = false
	s.reachable = reachable
}

// Login validates input, checks reachability, and attempts authentication.
// Malformed input never issues a network call.
func (s *SessionService) Login(ctx context.Context, name, password string) LoginOutcome {
	in := loginInput{Name: strings.TrimSpace(name), Password: password}
	if err := s.validate.Struct(in); err != nil {
		return LoginOutcome{Error: loginValidationMessage(err)}
	}

	s.mu.Lock()
	reachable := s.reachable
	s.mu.Unlock()
	if !reachable {
		if !s.gateway.Reachable(ctx) {
			return LoginOutcome{Error: msgBackendDown}
		}
		s.setReachable(true)
	}

	res := s.gateway.Login(ctx, in.Name, in.Password)
	if res.NetworkError {
		s.setReachable(false)
		return LoginOutcome{Error: domain.MsgNetworkError}
	}
	if !res.Success {
		if res.Err != "" {
			return LoginOutcome{Error: res.Err}
		}
		return LoginOutcome{Error: msgLoginFailed}
	}

	var reply domain.LoginReply
	if err := res.Decode(&reply); err != nil {
		return LoginOutcome{Error: msgLoginFailed}
	}
	// The backend can answer 200 with its own failure flag.
	if !reply.Success || reply.Token == "" {
		if reply.Message != "" {
			return LoginOutcome{Error: reply.Message}
		}
		return LoginOutcome{Error: msgLoginFailed}
	}

	if err := s.tokens.Set(ctx, reply.Token); err != nil {
		s.log.Error().Err(err).Msg("failed to persist token")
	}

	user := reply.Profile()
	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.reachable = true
	s.renderKey++
	s.mu.Unlock()

	s.log.Info().Str("user", user.FullName).Str("role", string(user.Role)).Msg("login successful")
	return LoginOutcome{Success: true, User: user, RedirectTo: reply.RedirectTo}
}

func loginValidationMessage(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			if fe.Tag() == "login_name" {
				return msgLoginNameFormat
			}
		}
	}
	return msgLoginRequired
}

// Logout clears local state unconditionally. The backend call is best-effort
// and only attempted when the backend was last known reachable; its outcome
// never blocks the local purge. RenderKey is incremented exactly once.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	reachable := s.reachable
	s.mu.Unlock()

	if reachable {
		if res := s.gateway.Logout(ctx); !res.Success && !res.TokenExpired {
			s.log.Warn().Str("error", res.Err).Msg("backend logout failed, clearing locally")
		}
	}

	err := s.tokens.Remove(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to remove token on logout")
	}

	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.renderKey++
	s.mu.Unlock()

	s.log.Info().Msg("logged out")
	return err
}

// ClearStorage wipes all local persisted state and resets the session.
// Administrative/debug operation.
func (s *SessionService) ClearStorage(ctx context.Context) error {
	err := s.tokens.Clear(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to clear storage")
	}

	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.mu.Unlock()

	return err
}

// ValidateSession re-runs token validation. Any failure cascades into the
// full Logout path; success leaves state untouched.
func (s *SessionService) ValidateSession(ctx context.Context) bool {
	res := s.gateway.ValidateToken(ctx)
	if res.Success {
		var reply domain.ValidateReply
		if err := res.Decode(&reply); err == nil && reply.Valid {
			return true
		}
	}
	s.log.Warn().Msg("session validation failed, logging out")
	_ = s.Logout(ctx)
	return false
}

func (s *SessionService) setReachable(v bool) {
	s.mu.Lock()
	s.reachable = v
	s.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the session state.
func (s *SessionService) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	var user *domain.Profile
	if s.user != nil {
		u := *s.user
		user = &u
	}
	return domain.Session{
		Authenticated:    s.authenticated,
		User:             user,
		Loading:          s.loading,
		RenderKey:        s.renderKey,
		BackendReachable: s.reachable,
	}
}

// IsAdmin reports whether the current user carries the ADMIN role.
// False when unauthenticated.
func (s *SessionService) IsAdmin() bool {
	return s.HasRole(domain.RoleAdmin)
}

// HasRole reports whether the current user carries exactly the given role.
func (s *SessionService) HasRole(role domain.Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.user.Role == role
}
