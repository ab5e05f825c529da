package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/opendaan/donation-client/internal/core/domain"
)

var signingKey = []byte("test-signing-key")

// memTokenStore is a minimal in-memory TokenStore for exercising the client.
type memTokenStore struct {
	token   string
	has     bool
	removed int
}

func (m *memTokenStore) Get(context.Context) (string, error) {
	if !m.has {
		return "", domain.ErrTokenNotFound
	}
	return m.token, nil
}

func (m *memTokenStore) Set(_ context.Context, token string) error {
	m.token = token
	m.has = true
	return nil
}

func (m *memTokenStore) Remove(context.Context) error {
	m.token = ""
	m.has = false
	m.removed++
	return nil
}

func (m *memTokenStore) Clear(ctx context.Context) error { return m.Remove(ctx) }

func signToken(t *testing.T, name string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": name,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// bearerSubject parses the Authorization header and returns the token subject,
// or "" when the header is missing or the token does not verify.
func bearerSubject(r *http.Request) string {
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if raw == "" || raw == r.Header.Get("Authorization") {
		return ""
	}
	parsed, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
		return signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return ""
	}
	sub, _ := parsed.Claims.GetSubject()
	return sub
}

func newClient(t *testing.T, srv *httptest.Server, tokens *memTokenStore) *Client {
	t.Helper()
	return New(srv.URL, srv.Client(), tokens, zerolog.Nop())
}

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Fatalf("login must not carry a token")
		}
		var body struct {
			Name     string `json:"name"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode login body: %v", err)
		}
		if body.Name != "John_Doe" || body.Password != "secret" {
			t.Fatalf("unexpected credentials: %+v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success":   true,
			"token":     signToken(t, body.Name),
			"firstName": "John",
			"lastName":  "Doe",
			"role":      "ADMIN",
		})
	}))
	defer srv.Close()

	client := newClient(t, srv, &memTokenStore{})
	res := client.Login(context.Background(), "John_Doe", "secret")
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}

	var reply domain.LoginReply
	if err := res.Decode(&reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if !reply.Success || reply.Token == "" || reply.Role != domain.RoleAdmin {
		t.Fatalf("unexpected reply: %+v", reply)
	}
}

func TestClient_ValidateToken_AttachesBearer(t *testing.T) {
	tokens := &memTokenStore{}
	tokens.Set(context.Background(), signToken(t, "John_Doe"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/validate" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		sub := bearerSubject(r)
		if sub != "John_Doe" {
			t.Fatalf("expected verified bearer token, got subject %q", sub)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"valid": true, "firstName": "John"})
	}))
	defer srv.Close()

	client := newClient(t, srv, tokens)
	res := client.ValidateToken(context.Background())
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
}

func TestClient_Unauthorized_PurgesToken(t *testing.T) {
	tokens := &memTokenStore{}
	tokens.Set(context.Background(), signToken(t, "John_Doe"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"message": "Token expired"})
	}))
	defer srv.Close()

	client := newClient(t, srv, tokens)
	res := client.ValidateToken(context.Background())
	if !res.TokenExpired {
		t.Fatalf("expected TokenExpired, got %+v", res)
	}
	if res.Err != domain.MsgAuthExpired {
		t.Fatalf("expected %q, got %q", domain.MsgAuthExpired, res.Err)
	}
	if tokens.has || tokens.removed != 1 {
		t.Fatalf("token must be purged before the result is returned")
	}
}

func TestClient_Unauthorized_NonJSONBody(t *testing.T) {
	tokens := &memTokenStore{}
	tokens.Set(context.Background(), "opaque")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := newClient(t, srv, tokens)
	res := client.ValidateToken(context.Background())
	if !res.TokenExpired || tokens.has {
		t.Fatalf("401 must expire the session regardless of payload shape, got %+v", res)
	}
}

func TestClient_HTTPError_MessageExtraction(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		status      int
		body        string
		want        string
	}{
		{"message field", "application/json", 400, `{"message": "Invalid donation"}`, "Invalid donation"},
		{"error field", "application/json", 500, `{"error": "boom"}`, "boom"},
		{"empty envelope", "application/json", 503, `{}`, "HTTP error! status: 503"},
		{"plain text", "text/plain", 502, "Bad Gateway", "Bad Gateway"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tc.contentType)
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := newClient(t, srv, &memTokenStore{})
			res := client.AllDonations(context.Background())
			if res.Success || res.TokenExpired || res.NetworkError {
				t.Fatalf("expected plain HTTP failure, got %+v", res)
			}
			if res.Status != tc.status || res.Err != tc.want {
				t.Fatalf("got status=%d err=%q, want status=%d err=%q", res.Status, res.Err, tc.status, tc.want)
			}
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing is listening any more

	client := New(srv.URL, &http.Client{Timeout: time.Second}, &memTokenStore{}, zerolog.Nop())
	res := client.Health(context.Background())
	if !res.NetworkError {
		t.Fatalf("expected NetworkError, got %+v", res)
	}
	if res.Err != domain.MsgNetworkError {
		t.Fatalf("expected %q, got %q", domain.MsgNetworkError, res.Err)
	}
}

func TestClient_Reachable(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		want    bool
	}{
		{
			"up",
			func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/health" {
					t.Fatalf("unexpected path: %s", r.URL.Path)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"status": "UP"}`))
			},
			true,
		},
		{
			"degraded",
			func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"status": "DOWN"}`))
			},
			false,
		},
		{
			"server error",
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			client := newClient(t, srv, &memTokenStore{})
			if got := client.Reachable(context.Background()); got != tc.want {
				t.Fatalf("Reachable = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestClient_EmptyJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newClient(t, srv, &memTokenStore{})
	res := client.Logout(context.Background())
	if !res.Success {
		t.Fatalf("expected success on empty body, got %+v", res)
	}
	var empty struct{}
	if err := res.Decode(&empty); err != nil {
		t.Fatalf("empty body must decode as {}: %v", err)
	}
}

func TestClient_DonationPaths(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	client := newClient(t, srv, &memTokenStore{})
	ctx := context.Background()

	client.DonationsByYear(ctx, 2024)
	if gotMethod != http.MethodGet || gotPath != "/donations/2024" {
		t.Fatalf("DonationsByYear: %s %s", gotMethod, gotPath)
	}

	client.UpdateDonation(ctx, 2024, 7, domain.DonationInput{DonorName: "Ramesh Kulkarni"})
	if gotMethod != http.MethodPut || gotPath != "/donations/2024/7" {
		t.Fatalf("UpdateDonation: %s %s", gotMethod, gotPath)
	}

	client.DeleteDonation(ctx, 2024, 7)
	if gotMethod != http.MethodDelete || gotPath != "/donations/2024/7" {
		t.Fatalf("DeleteDonation: %s %s", gotMethod, gotPath)
	}

	client.YearStats(ctx, 2023)
	if gotPath != "/donations/2023/stats" {
		t.Fatalf("YearStats: %s", gotPath)
	}
}

func TestClient_UpdatePassword_EscapesQuery(t *testing.T) {
	var gotPath, gotPassword string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPassword = r.URL.Query().Get("newPassword")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	client := newClient(t, srv, &memTokenStore{})
	client.UpdatePassword(context.Background(), "Asha", "Patil", "p&ss w0rd=1")
	if gotPath != "/users/update-password/Asha/Patil" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotPassword != "p&ss w0rd=1" {
		t.Fatalf("password survived escaping badly: %q", gotPassword)
	}
}
