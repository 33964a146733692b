package editor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry owns the open sessions, keyed by generated id. It stands in for
// the per-tab page state of the original UI: one session per open editor.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	logger   *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// Open creates and registers a new session.
func (r *Registry) Open(opts Options) *Session {
	s := New(uuid.NewString(), opts)
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Get looks up a session and refreshes its idle clock.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if ok {
		s.Touch()
	}
	return s, ok
}

// Close removes a session and stops its autosave runner.
func (r *Registry) Close(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		s.Close()
	}
}

// Len reports the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep closes sessions idle longer than maxIdle and returns how many were
// closed.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	r.mu.Lock()
	var stale []*Session
	for id, s := range r.sessions {
		if s.LastAccess().Before(cutoff) {
			stale = append(stale, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range stale {
		s.Close()
		r.logger.Info("closed idle session", zap.String("session_id", s.ID))
	}
	return len(stale)
}

// Janitor sweeps on an interval until ctx is cancelled.
func (r *Registry) Janitor(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(maxIdle)
		}
	}
}
