package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/opendaan/donation-client/internal/core/domain"
	"github.com/opendaan/donation-client/internal/core/ports"
)

// DonationService wraps the gateway's donation operations, gating the admin
// surface on the current role and cascading token expiry into a forced logout.
type DonationService struct {
	gateway  ports.Gateway
	session  ports.SessionControl
	validate *validator.Validate
	log      zerolog.Logger
}

func NewDonationService(gateway ports.Gateway, session ports.SessionControl, log zerolog.Logger) *DonationService {
	return &DonationService{
		gateway:  gateway,
		session:  session,
		validate: validator.New(),
		log:      log,
	}
}

// createReply is the backend envelope for donation creation and mutation.
type createReply struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Data    *domain.Donation `json:"data,omitempty"`
}

// Create validates the input locally and submits a new donation.
func (s *DonationService) Create(ctx context.Context, in domain.DonationInput) (*domain.Donation, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	res := s.gateway.CreateDonation(ctx, in)
	if !res.Success {
		return nil, s.fail(ctx, res)
	}

	var reply createReply
	if err := res.Decode(&reply); err != nil {
		return nil, err
	}
	if !reply.Success {
		return nil, errors.New(nonEmpty(reply.Message, "failed to create donation"))
	}
	s.log.Info().Str("donor", in.DonorName).Float64("amount", in.DonationAmount).Msg("donation created")
	return reply.Data, nil
}

// ByYear lists donations for one year.
func (s *DonationService) ByYear(ctx context.Context, year int) (*domain.DonationList, error) {
	res := s.gateway.DonationsByYear(ctx, year)
	if !res.Success {
		return nil, s.fail(ctx, res)
	}
	var list domain.DonationList
	if err := res.Decode(&list); err != nil {
		return nil, err
	}
	return &list, nil
}

// All lists donations across all years. Admin only; non-admin callers are
// rejected before any network call.
func (s *DonationService) All(ctx context.Context) (*domain.DonationList, error) {
	if !s.session.IsAdmin() {
		return nil, domain.ErrAccessDenied
	}
	res := s.gateway.AllDonations(ctx)
	if !res.Success {
		return nil, s.fail(ctx, res)
	}
	var list domain.DonationList
	if err := res.Decode(&list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Update replaces a donation record. Admin only.
func (s *DonationService) Update(ctx context.Context, year int, id int64, in domain.DonationInput) (*domain.Donation, error) {
	if !s.session.IsAdmin() {
		return nil, domain.ErrAccessDenied
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	res := s.gateway.UpdateDonation(ctx, year, id, in)
	if !res.Success {
		return nil, s.fail(ctx, res)
	}

	var reply createReply
	if err := res.Decode(&reply); err != nil {
		return nil, err
	}
	if !reply.Success {
		return nil, errors.New(nonEmpty(reply.Message, "failed to update donation"))
	}
	return reply.Data, nil
}

// Delete removes a donation record. Admin only.
func (s *DonationService) Delete(ctx context.Context, year int, id int64) error {
	if !s.session.IsAdmin() {
		return domain.ErrAccessDenied
	}
	res := s.gateway.DeleteDonation(ctx, year, id)
	if !res.Success {
		return s.fail(ctx, res)
	}
	s.log.Info().Int("year", year).Int64("id", id).Msg("donation deleted")
	return nil
}

// Years lists the years that have donation data.
func (s *DonationService) Years(ctx context.Context) (*domain.AvailableYears, error) {
	res := s.gateway.AvailableYears(ctx)
	if !res.Success {
		return nil, s.fail(ctx, res)
	}
	var years domain.AvailableYears
	if err := res.Decode(&years); err != nil {
		return nil, err
	}
	return &years, nil
}

// Stats summarises one donation year.
func (s *DonationService) Stats(ctx context.Context, year int) (*domain.YearStats, error) {
	res := s.gateway.YearStats(ctx, year)
	if !res.Success {
		return nil, s.fail(ctx, res)
	}
	var stats domain.YearStats
	if err := res.Decode(&stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// fail maps a failed gateway result to a service error, cascading token
// expiry into the forced-logout path.
func (s *DonationService) fail(ctx context.Context, res *domain.CallResult) error {
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

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
