package domain

import "encoding/json"

// Well-known user-facing messages produced at the gateway boundary.
const (
	MsgAuthExpired  = "Authentication expired. Please login again."
	MsgNetworkError = "Network error. Please check your connection."
)

// CallResult is the normalized envelope every backend call returns.
//
// The gateway never surfaces expected failure modes as Go errors: transport
// failures, non-2xx statuses and token expiry are all folded into this shape
// so callers branch on flags instead of unwrapping error chains.
type CallResult struct {
	Success bool
	Status  int
	Data    json.RawMessage
	Err     string

	// TokenExpired marks an HTTP 401. The stored token has already been
	// removed by the time the caller sees this flag.
	TokenExpired bool
	// NetworkError marks a transport-level failure (DNS, connection reset,
	// malformed response body). Distinct from any HTTP-level failure.
	NetworkError bool
}

// Decode unmarshals the data payload into v.
func (r *CallResult) Decode(v any) error {
	if len(r.Data) == 0 {
		return json.Unmarshal([]byte("{}"), v)
	}
	return json.Unmarshal(r.Data, v)
}

// OK builds a successful result wrapping payload.
func OK(status int, payload json.RawMessage) *CallResult {
	return &CallResult{Success: true, Status: status, Data: payload}
}

// Fail builds a generic failure result.
func Fail(status int, msg string) *CallResult {
	return &CallResult{Status: status, Err: msg}
}

// Expired builds the 401 result. Always carries MsgAuthExpired regardless of
// what the backend put in the payload.
func Expired() *CallResult {
	return &CallResult{Status: 401, Err: MsgAuthExpired, TokenExpired: true}
}

// Unreachable builds the transport-failure result.
func Unreachable() *CallResult {
	return &CallResult{Err: MsgNetworkError, NetworkError: true}
}
