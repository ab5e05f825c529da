package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/opendaan/donation-client/internal/core/domain"
	"github.com/opendaan/donation-client/internal/pkg/metrics"
)

// Login authenticates with the compound identifier. No token is attached.
func (c *Client) Login(ctx context.Context, name, password string) *domain.CallResult {
	body := map[string]string{"name": name, "password": password}
	return c.call(ctx, http.MethodPost, epLogin, body, callOptions{skipAuth: true})
}

// ValidateToken asks the backend whether the stored token is still valid.
func (c *Client) ValidateToken(ctx context.Context) *domain.CallResult {
	return c.call(ctx, http.MethodPost, epValidate, nil, callOptions{})
}

// CurrentUser fetches the profile behind the stored token.
func (c *Client) CurrentUser(ctx context.Context) *domain.CallResult {
	return c.call(ctx, http.MethodGet, epMe, nil, callOptions{})
}

// Logout notifies the backend. Callers remove the token locally regardless of
// the outcome.
func (c *Client) Logout(ctx context.Context) *domain.CallResult {
	return c.call(ctx, http.MethodPost, epLogout, nil, callOptions{})
}

// Health probes the unauthenticated health endpoint.
func (c *Client) Health(ctx context.Context) *domain.CallResult {
	return c.call(ctx, http.MethodGet, epHealth, nil, callOptions{skipAuth: true})
}

// AppInfo fetches the unauthenticated application info.
func (c *Client) AppInfo(ctx context.Context) *domain.CallResult {
	return c.call(ctx, http.MethodGet, epInfo, nil, callOptions{skipAuth: true})
}

// Reachable reports whether the backend answered the health probe and
// declared itself up.
func (c *Client) Reachable(ctx context.Context) bool {
	res := c.Health(ctx)
	up := false
	if res.Success {
		var health domain.HealthReply
		if err := res.Decode(&health); err == nil {
			up = health.Up()
		}
	}
	if up {
		metrics.BackendReachable.Set(1)
	} else {
		metrics.BackendReachable.Set(0)
	}
	return up
}

func (c *Client) CreateDonation(ctx context.Context, in domain.DonationInput) *domain.CallResult {
	return c.call(ctx, http.MethodPost, epDonations, in, callOptions{})
}

func (c *Client) DonationsByYear(ctx context.Context, year int) *domain.CallResult {
	path := fmt.Sprintf("%s/%d", epDonations, year)
	return c.call(ctx, http.MethodGet, path, nil, callOptions{endpoint: epDonations + "/{year}"})
}

func (c *Client) AllDonations(ctx context.Context) *domain.CallResult {
	return c.call(ctx, http.MethodGet, epDonationsAll, nil, callOptions{})
}

func (c *Client) UpdateDonation(ctx context.Context, year int, id int64, in domain.DonationInput) *domain.CallResult {
	path := fmt.Sprintf("%s/%d/%d", epDonations, year, id)
	return c.call(ctx, http.MethodPut, path, in, callOptions{endpoint: epDonations + "/{year}/{id}"})
}

func (c *Client) DeleteDonation(ctx context.Context, year int, id int64) *domain.CallResult {
	path := fmt.Sprintf("%s/%d/%d", epDonations, year, id)
	return c.call(ctx, http.MethodDelete, path, nil, callOptions{endpoint: epDonations + "/{year}/{id}"})
}

func (c *Client) AvailableYears(ctx context.Context) *domain.CallResult {
	return c.call(ctx, http.MethodGet, epDonationsYears, nil, callOptions{})
}

func (c *Client) YearStats(ctx context.Context, year int) *domain.CallResult {
	path := fmt.Sprintf("%s/%d/stats", epDonations, year)
	return c.call(ctx, http.MethodGet, path, nil, callOptions{endpoint: epDonations + "/{year}/stats"})
}

func (c *Client) ActiveUsers(ctx context.Context) *domain.CallResult {
	return c.call(ctx, http.MethodGet, epUsersActive, nil, callOptions{})
}

func (c *Client) DeactivateUser(ctx context.Context, firstName, lastName string) *domain.CallResult {
	path := fmt.Sprintf("%s/%s/%s", epUsersDeactivate, url.PathEscape(firstName), url.PathEscape(lastName))
	return c.call(ctx, http.MethodPut, path, nil, callOptions{endpoint: epUsersDeactivate + "/{first}/{last}"})
}

func (c *Client) UpdatePassword(ctx context.Context, firstName, lastName, newPassword string) *domain.CallResult {
	path := fmt.Sprintf("%s/%s/%s?newPassword=%s",
		epUsersUpdatePassword, url.PathEscape(firstName), url.PathEscape(lastName), url.QueryEscape(newPassword))
	return c.call(ctx, http.MethodPut, path, nil, callOptions{endpoint: epUsersUpdatePassword + "/{first}/{last}"})
}
