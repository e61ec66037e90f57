// Package session coordinates access-token renewal between concurrent
// requests. A Manager is either idle or refreshing; while refreshing, every
// request that hits an expired token waits in a FIFO queue for the single
// in-flight renewal instead of starting its own.
package session

import (
	"context"
	"sync"
	"time"
)

// Role tells a caller what to do after Begin.
type Role int

const (
	// Owner must perform the renewal and call Settle exactly once.
	Owner Role = iota
	// Waiter must call Wait; a renewal owned by someone else is in flight.
	Waiter
	// Fresh means a renewal already completed after the caller's request
	// was sent; Ticket.Token holds the newer access token.
	//
	// A request that carried a token other than the issued one is always
	// older than the renewal. A request that carried no token is older only
	// when it was sent before the renewal settled.
	Fresh
)

func (r Role) String() string {
	switch r {
	case Owner:
		return "owner"
	case Waiter:
		return "waiter"
	case Fresh:
		return "fresh"
	default:
		return "unknown"
	}
}

type outcome struct {
	token string
	err   error
}

// Ticket is handed out by Begin.
type Ticket struct {
	Role  Role
	Token string

	done <-chan outcome
}

// Manager is safe for concurrent use. The zero value is idle.
type Manager struct {
	mu         sync.Mutex
	refreshing bool
	queue      []chan outcome
	issued     string
	issuedAt   time.Time
}

func NewManager() *Manager {
	return &Manager{}
}

// Begin is the atomic check-and-set of the refreshing flag. sentWith is the
// access token the failed request carried. Without a send time a request
// that carried no token never gets a Fresh ticket; see BeginSince.
func (m *Manager) Begin(sentWith string) Ticket {
	return m.BeginSince(sentWith, time.Time{})
}

// BeginSince is Begin for a request sent at sentAt.
func (m *Manager) BeginSince(sentWith string, sentAt time.Time) Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.refreshing {
		ch := make(chan outcome, 1)
		m.queue = append(m.queue, ch)
		return Ticket{Role: Waiter, done: ch}
	}

	if m.issued != "" && m.newerThan(sentWith, sentAt) {
		return Ticket{Role: Fresh, Token: m.issued}
	}

	m.refreshing = true
	return Ticket{Role: Owner}
}

func (m *Manager) newerThan(sentWith string, sentAt time.Time) bool {
	if sentWith != "" {
		return m.issued != sentWith
	}
	return !sentAt.IsZero() && !m.issuedAt.Before(sentAt)
}

// Settle ends the current refresh. The flag is cleared and the queue is
// detached before any waiter is released, so requests replayed by waiters
// never observe a refresh in progress. Waiters are released in enqueue
// order. It returns the number of waiters released.
func (m *Manager) Settle(token string, err error) int {
	m.mu.Lock()
	m.refreshing = false
	queue := m.queue
	m.queue = nil
	if err == nil {
		m.issued, m.issuedAt = token, time.Now()
	} else {
		m.issued, m.issuedAt = "", time.Time{}
	}
	m.mu.Unlock()

	for _, ch := range queue {
		ch <- outcome{token: token, err: err}
	}
	return len(queue)
}

// Wait blocks a Waiter until the owner settles or ctx is done. Leaving early
// is safe: the queue slot is buffered and Settle never blocks on it.
func (m *Manager) Wait(ctx context.Context, t Ticket) (string, error) {
	if t.Role == Fresh {
		return t.Token, nil
	}
	select {
	case o := <-t.done:
		return o.token, o.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Reset forgets the token issued by the last renewal. Called when a session
// starts or ends so a token from a previous session is never reused.
func (m *Manager) Reset() {
	m.mu.Lock()
	m.issued, m.issuedAt = "", time.Time{}
	m.mu.Unlock()
}

func (m *Manager) Refreshing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshing
}

// Pending reports how many waiters are queued behind the current refresh.
func (m *Manager) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
