package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/opendaan/donation-client/internal/core/domain"
	"github.com/opendaan/donation-client/internal/core/ports"
)

// UserService exposes the admin-only user management operations. Every
// operation is gated locally on the ADMIN role before any network call.
type UserService struct {
	gateway ports.Gateway
	session ports.SessionControl
	log     zerolog.Logger
}

func NewUserService(gateway ports.Gateway, session ports.SessionControl, log zerolog.Logger) *UserService {
	return &UserService{gateway: gateway, session: session, log: log}
}

type userListReply struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message,omitempty"`
	Users      []domain.ActiveUser `json:"users"`
	TotalCount int                 `json:"totalCount"`
}

type userActionReply struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// GetAllUsers lists active users. Non-admin callers get ErrAccessDenied
// without a network call; a token-expired response forces a logout and
// surfaces ErrSessionExpired.
func (s *UserService) GetAllUsers(ctx context.Context) ([]domain.ActiveUser, error) {
	if !s.session.IsAdmin() {
		return nil, domain.ErrAccessDenied
	}

	res := s.gateway.ActiveUsers(ctx)
	if !res.Success {
		return nil, s.fail(ctx, res)
	}

	var reply userListReply
	if err := res.Decode(&reply); err != nil {
		return nil, err
	}
	if !reply.Success {
		return nil, errors.New(nonEmpty(reply.Message, "failed to list users"))
	}
	return reply.Users, nil
}

// Deactivate marks a user inactive. Admin only.
func (s *UserService) Deactivate(ctx context.Context, firstName, lastName string) error {
	if !s.session.IsAdmin() {
		return domain.ErrAccessDenied
	}

	res := s.gateway.DeactivateUser(ctx, firstName, lastName)
	if !res.Success {
		return s.fail(ctx, res)
	}

	var reply userActionReply
	if err := res.Decode(&reply); err != nil {
		return err
	}
	if !reply.Success {
		return errors.New(nonEmpty(reply.Message, "failed to deactivate user"))
	}
	s.log.Info().Str("first_name", firstName).Str("last_name", lastName).Msg("user deactivated")
	return nil
}

// UpdatePassword changes a user's password. Admin only.
func (s *UserService) UpdatePassword(ctx context.Context, firstName, lastName, newPassword string) error {
	if !s.session.IsAdmin() {
		return domain.ErrAccessDenied
	}
	if newPassword == "" {
		return errors.New("new password is required")
	}

	res := s.gateway.UpdatePassword(ctx, firstName, lastName, newPassword)
	if !res.Success {
		return s.fail(ctx, res)
	}

	var reply userActionReply
	if err := res.Decode(&reply); err != nil {
		return err
	}
	if !reply.Success {
		return errors.New(nonEmpty(reply.Message, "failed to update password"))
	}
	s.log.Info().Str("first_name", firstName).Str("last_name", lastName).Msg("password updated")
	return nil
}

func (s *UserService) fail(ctx context.Context, res *domain.CallResult) error {
	switch {
	case res.TokenExpired:
		_ = s.session.Logout(ctx)
		return domain.ErrSessionExpired
	case res.NetworkError:
		return domain.ErrBackendUnavailable
	default:
		return errors.New(nonEmpty(res.Err, "request failed"))
	}
}
