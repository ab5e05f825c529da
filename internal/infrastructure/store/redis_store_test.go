package store

import (
	"testing"

	"github.com/opendaan/donation-client/internal/core/ports"
)

var (
	_ ports.TokenStore = (*FileTokenStore)(nil)
	_ ports.TokenStore = (*RedisTokenStore)(nil)
)

func TestRedisTokenStore_KeyNamespacing(t *testing.T) {
	s := NewRedisTokenStore(nil, "")
	if got := s.key(); got != "donation:token:default" {
		t.Fatalf("empty device must fall back to default namespace, got %q", got)
	}

	s = NewRedisTokenStore(nil, "kiosk-3")
	if got := s.key(); got != "donation:token:kiosk-3" {
		t.Fatalf("unexpected key: %q", got)
	}
}
