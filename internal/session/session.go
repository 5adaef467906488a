package session

import (
	"sync"
	"time"

	"bmicalc/internal/bmi"
	"bmicalc/internal/history"
)

// Session owns the history of one interactive user. Every operation on it
// is serialized, so the history store underneath needs no locking.
type Session struct {
	id        string
	createdAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
	history  *history.Store
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		id:        id,
		createdAt: now,
		lastSeen:  now,
		history:   history.NewStore(),
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Submit clamps m, runs the calculator and records the result. A failed
// calculation leaves the history untouched.
func (s *Session) Submit(m bmi.Measurement) (bmi.Result, error) {
	res, err := m.Clamp().Compute()
	if err != nil {
		return bmi.Result{}, err
	}
	s.mu.Lock()
	s.history.Append(res)
	s.mu.Unlock()
	return res, nil
}

// History returns a snapshot of all results in submission order.
func (s *Session) History() []bmi.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.All()
}

func (s *Session) Rows() []history.Row {
	return history.Rows(s.History())
}

func (s *Session) Latest() (bmi.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Latest()
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Len()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	if now.After(s.lastSeen) {
		s.lastSeen = now
	}
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
