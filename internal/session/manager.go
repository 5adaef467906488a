package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"bmicalc/internal/logger"

	"github.com/google/uuid"
)

const (
	defaultIdleTTL       = time.Hour
	defaultSweepInterval = time.Minute
)

// Options 控制会话过期。
type Options struct {
	IdleTTL       time.Duration
	SweepInterval time.Duration
	Now           func() time.Time
}

// Manager 维护进程内的会话表。会话空闲超过 IdleTTL 即结束，其历史随之丢弃。
type Manager struct {
	idleTTL       time.Duration
	sweepInterval time.Duration
	now           func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(opts Options) *Manager {
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = defaultIdleTTL
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = defaultSweepInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{
		idleTTL:       opts.IdleTTL,
		sweepInterval: opts.SweepInterval,
		now:           opts.Now,
		sessions:      make(map[string]*Session),
	}
}

// Create starts a new empty session.
func (m *Manager) Create() *Session {
	s := newSession(uuid.NewString(), m.now())
	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	logger.Debugf("session started id=%s", s.id)
	return s
}

// Get returns a live session and marks it as used.
func (m *Manager) Get(id string) (*Session, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false
	}
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	s.touch(m.now())
	return s, true
}

// GetOrCreate resolves id, starting a fresh session when it is unknown or
// expired. created reports whether a new session was made.
func (m *Manager) GetOrCreate(id string) (s *Session, created bool) {
	if s, ok := m.Get(id); ok {
		return s, false
	}
	return m.Create(), true
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep ends sessions idle for longer than the TTL and returns how many were
// removed. A request that resolved a session just before it is swept still
// submits to that orphaned session, and the result is lost with it.
func (m *Manager) Sweep(now time.Time) int {
	cutoff := now.Add(-m.idleTTL)
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps on a fixed interval until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := m.Sweep(m.now()); n > 0 {
				logger.Infof("ended %d idle sessions, %d active", n, m.Len())
			}
		}
	}
}
