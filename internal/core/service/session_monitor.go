package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SessionMonitor periodically revalidates the session in the background.
// It only probes while a user is authenticated; a failed validation runs the
// usual forced-logout path inside ValidateSession.
type SessionMonitor struct {
	session  *SessionService
	interval time.Duration
	log      zerolog.Logger
}

// NewSessionMonitor creates a monitor. An interval <= 0 disables it: Start
// returns immediately without launching the loop.
func NewSessionMonitor(session *SessionService, interval time.Duration, log zerolog.Logger) *SessionMonitor {
	return &SessionMonitor{session: session, interval: interval, log: log}
}

// Start launches the check loop. The loop stops when ctx is cancelled.
func (m *SessionMonitor) Start(ctx context.Context) {
	if m.interval <= 0 {
		return
	}
	go m.run(ctx)
}

func (m *SessionMonitor) run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := m.session.Snapshot()
			if snap.Loading || !snap.Authenticated {
				continue
			}
			if !m.session.ValidateSession(ctx) {
				m.log.Warn().Msg("periodic session check failed")
			}
		}
	}
}
