// Package backend implements the HTTP gateway to the remote donation service.
//
// Every call goes through a single generic request path that attaches the
// stored bearer token, normalizes the response into a domain.CallResult, and
// treats any 401 as "session invalid" by purging the token as a side effect.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/opendaan/donation-client/internal/core/domain"
	"github.com/opendaan/donation-client/internal/core/ports"
	"github.com/opendaan/donation-client/internal/pkg/metrics"
)

const defaultTimeout = 30 * time.Second

// Client is the single point of contact with the remote backend. It holds no
// endpoint-specific logic beyond building URLs and payloads.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  ports.TokenStore
	log     zerolog.Logger
}

// New creates a Client rooted at baseURL. A default timeout is applied when
// the provided http.Client has none. Calls are independent and at-most-once:
// no retries, no queuing.
func New(baseURL string, hc *http.Client, tokens ports.TokenStore, log zerolog.Logger) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: baseURL, http: hc, tokens: tokens, log: log}
}

// callOptions tune a single request.
type callOptions struct {
	// skipAuth leaves the Authorization header off even when a token exists.
	skipAuth bool
	// headers are merged over the defaults.
	headers map[string]string
	// endpoint is the path template used as the metrics label; defaults to
	// the literal path when empty.
	endpoint string
}

// call performs one backend round-trip and normalizes the response.
func (c *Client) call(ctx context.Context, method, path string, body any, opts callOptions) *domain.CallResult {
	endpoint := opts.endpoint
	if endpoint == "" {
		endpoint = path
	}
	start := time.Now()
	res := c.roundTrip(ctx, method, path, body, opts)
	metrics.RequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	metrics.RequestsTotal.WithLabelValues(endpoint, outcome(res)).Inc()
	return res
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body any, opts callOptions) *domain.CallResult {
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			c.log.Error().Err(err).Str("path", path).Msg("request payload marshal failed")
			return domain.Unreachable()
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return domain.Unreachable()
	}

	req.Header.Set("Content-Type", "application/json")
	if !opts.skipAuth {
		token, err := c.tokens.Get(ctx)
		switch {
		case err == nil && token != "":
			req.Header.Set("Authorization", "Bearer "+token)
		case err != nil && !errors.Is(err, domain.ErrTokenNotFound):
			c.log.Warn().Err(err).Msg("token read failed, sending unauthenticated")
		}
	}
	for k, v := range opts.headers {
		req.Header.Set(k, v)
	}

	c.log.Debug().Str("method", method).Str("path", path).Msg("backend request")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("backend unreachable")
		return domain.Unreachable()
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Unreachable()
	}

	data, err := normalizeBody(resp.Header.Get("Content-Type"), raw)
	if err != nil {
		c.log.Warn().Err(err).Str("path", path).Int("status", resp.StatusCode).Msg("unparseable response body")
		return domain.Unreachable()
	}

	c.log.Debug().Str("path", path).Int("status", resp.StatusCode).Msg("backend response")

	// Any 401 means the session is invalid, regardless of payload content.
	// The stored token must be gone before the caller sees the flag.
	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.tokens.Remove(ctx); err != nil {
			c.log.Error().Err(err).Msg("failed to remove expired token")
		}
		metrics.TokenExpiryTotal.Inc()
		return domain.Expired()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Fail(resp.StatusCode, errorMessage(data, resp.StatusCode))
	}

	return domain.OK(resp.StatusCode, data)
}

// normalizeBody returns the JSON payload, wrapping non-JSON bodies as
// {"message": <text>}.
func normalizeBody(contentType string, raw []byte) (json.RawMessage, error) {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType == "application/json" {
		if len(raw) == 0 {
			return json.RawMessage("{}"), nil
		}
		if !json.Valid(raw) {
			return nil, errors.New("invalid json payload")
		}
		return json.RawMessage(raw), nil
	}
	wrapped, err := json.Marshal(map[string]string{"message": string(raw)})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(wrapped), nil
}

// errorMessage extracts the payload's message field, falling back to a
// generic HTTP-status message.
func errorMessage(data json.RawMessage, status int) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return fmt.Sprintf("HTTP error! status: %d", status)
}

func outcome(res *domain.CallResult) string {
	switch {
	case res.Success:
		return metrics.OutcomeSuccess
	case res.TokenExpired:
		return metrics.OutcomeTokenExpired
	case res.NetworkError:
		return metrics.OutcomeNetworkError
	default:
		return metrics.OutcomeHTTPError
	}
}
