package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/opendaan/donation-client/internal/core/domain"
)

func TestSessionMonitor_ValidatesPeriodically(t *testing.T) {
	gw := newStubGateway(t)
	session := NewSessionService(gw, &stubTokenStore{}, zerolog.Nop())
	loginAs(t, session, gw, domain.RoleUser)

	gw.validateFn = func(context.Context) *domain.CallResult {
		return domain.OK(200, json.RawMessage(`{"valid": true}`))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	monitor := NewSessionMonitor(session, 10*time.Millisecond, zerolog.Nop())
	monitor.Start(ctx)

	deadline := time.Now().Add(time.Second)
	for gw.validateCalls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if gw.validateCalls.Load() == 0 {
		t.Fatalf("expected at least one periodic validation")
	}
}

func TestSessionMonitor_DisabledWithoutInterval(t *testing.T) {
	gw := newStubGateway(t)
	session := NewSessionService(gw, &stubTokenStore{}, zerolog.Nop())

	monitor := NewSessionMonitor(session, 0, zerolog.Nop())
	monitor.Start(context.Background()) // must not launch a goroutine

	time.Sleep(20 * time.Millisecond)
	if gw.validateCalls.Load() != 0 {
		t.Fatalf("disabled monitor must not validate")
	}
}

func TestSessionMonitor_SkipsWhileUnauthenticated(t *testing.T) {
	gw := newStubGateway(t)
	gw.reachableFn = func(context.Context) bool { return false }
	session := NewSessionService(gw, &stubTokenStore{}, zerolog.Nop())
	session.Restore(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	monitor := NewSessionMonitor(session, 5*time.Millisecond, zerolog.Nop())
	monitor.Start(ctx)

	time.Sleep(40 * time.Millisecond)
	if gw.validateCalls.Load() != 0 {
		t.Fatalf("monitor must not validate an unauthenticated session")
	}
}
