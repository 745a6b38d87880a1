package session

import (
	"context"
	"time"

	"github.com/dmitrijs2005/evmarket/internal/token"
)

// Start runs the mount check once and then re-checks the credential every
// CheckInterval until ctx is done or Stop is called. Calling Start while the
// watchdog is running does nothing.
func (m *Manager) Start(ctx context.Context) {
	m.runMu.Lock()
	defer m.runMu.Unlock()

	if m.cancel != nil {
		select {
		case <-m.stopped:
			// the parent context ended the previous loop
			m.cancel()
			m.cancel, m.stopped = nil, nil
		default:
			return
		}
	}

	m.mountCheck(ctx)

	ctx, cancel := context.WithCancel(ctx)
	stopped := make(chan struct{})
	m.cancel = cancel
	m.stopped = stopped

	go func() {
		defer close(stopped)
		m.watch(ctx)
	}()
}

// Stop cancels the watchdog and waits for it to exit. It is safe to call
// when the watchdog is not running.
func (m *Manager) Stop() {
	m.runMu.Lock()
	defer m.runMu.Unlock()

	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.stopped
	m.cancel = nil
	m.stopped = nil
}

// Running reports whether the watchdog loop is active.
func (m *Manager) Running() bool {
	m.runMu.Lock()
	defer m.runMu.Unlock()

	if m.stopped == nil {
		return false
	}
	select {
	case <-m.stopped:
		return false
	default:
		return true
	}
}

func (m *Manager) watch(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CheckExpiry(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// mountCheck evicts an already expired credential, or otherwise makes sure
// the cookie mirrors a stored one.
func (m *Manager) mountCheck(ctx context.Context) {
	if m.repo == nil {
		return
	}
	if m.evictIfExpired(ctx) {
		m.logger.Info(ctx, "expired token removed on start")
		return
	}
	m.SyncCookie(ctx)
}

// CheckExpiry is one watchdog tick. When the stored credential has expired
// it evicts the session and, unless the user is on a public page, sends them
// to /login with ExpiredNotice. It reports whether a session was evicted.
func (m *Manager) CheckExpiry(ctx context.Context) bool {
	if !m.evictIfExpired(ctx) {
		return false
	}
	m.logger.Info(ctx, "expired token removed by watchdog")

	m.navMu.RLock()
	nav := m.navigator
	m.navMu.RUnlock()
	if nav == nil {
		return true
	}

	path := nav.CurrentPath()
	if _, public := m.publicPaths[path]; !public {
		nav.Redirect("/login", ExpiredNotice)
	}
	return true
}

func (m *Manager) evictIfExpired(ctx context.Context) bool {
	if m.repo == nil {
		return false
	}

	m.mu.Lock()
	tok, ok := m.token(ctx)
	if !ok || !token.IsExpired(tok, m.now()) {
		m.mu.Unlock()
		return false
	}
	if _, err := m.evict(ctx); err != nil {
		m.logger.Error(ctx, "session eviction failed", "reason", ReasonExpired, "error", err)
	}
	m.mu.Unlock()

	m.publish(ReasonExpired)
	return true
}
