package editor

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StartAutosave runs the silent draft-save loop until StopAutosave or ctx
// cancellation. Each tick saves only when the document has a name, has
// unsaved changes, and nothing else is writing. Validation and save failures
// are swallowed; only the status line records them.
func (s *Session) StartAutosave(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 60 * time.Second
	}

	s.mu.Lock()
	if s.autosaveCancel != nil {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.autosaveCancel = cancel
	done := make(chan struct{})
	s.autosaveDone = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.autosaveTick(ctx)
			}
		}
	}()
}

// StopAutosave cancels the loop and waits for the runner to exit. Safe to
// call repeatedly.
func (s *Session) StopAutosave() {
	s.mu.Lock()
	cancel := s.autosaveCancel
	done := s.autosaveDone
	s.autosaveCancel = nil
	s.autosaveDone = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (s *Session) autosaveTick(ctx context.Context) {
	if !s.shouldAutosave() {
		return
	}
	if s.validate() != nil {
		return
	}
	// a manual submit holds the gate exclusively; skip the tick rather than
	// queue a second write behind it
	if !s.saveMu.TryLock() {
		return
	}
	defer s.saveMu.Unlock()

	result, err := s.save(ctx)
	if err != nil {
		return
	}
	if result.Created {
		s.logger.Info("draft promoted to persisted document",
			zap.Int("doc_id", result.DocID),
		)
	}
}

func (s *Session) shouldAutosave() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeView || s.submitted {
		return false
	}
	if s.meta.Name == "" {
		return false
	}
	return s.dirty && !s.saving
}
