package loader

import (
	"context"
	"sync"
)

// ChangeFunc receives the session state after every transition. It must not call
// SetID, Reload or Close synchronously.
type ChangeFunc func(ViewState)

// Session tracks the view state for a changing identifier.
//
// Each SetID starts a new fetch cycle and cancels the previous one. Results are tagged
// with the generation that produced them; a result whose generation is no longer current
// is dropped, so the visible state always belongs to the latest identifier.
type Session struct {
	loader   *Loader
	parent   context.Context
	onChange ChangeFunc

	mu      sync.Mutex
	state   ViewState
	gen     uint64
	version uint64
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	// notifyMu orders callbacks; versions older than notified are skipped.
	notifyMu sync.Mutex
	notified uint64
}

// NewSession creates an idle session. Cycles run under ctx; cancelling it stops them.
func NewSession(ctx context.Context, l *Loader, onChange ChangeFunc) *Session {
	return &Session{
		loader:   l,
		parent:   ctx,
		onChange: onChange,
		state:    *NewViewState(""),
	}
}

// SetID switches the session to id and starts a fetch cycle for it.
func (s *Session) SetID(id string) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	ctx, cancel := context.WithCancel(s.parent)
	s.cancel = cancel

	next := NewViewState(id)
	next.Loading = true
	s.state = *next
	s.version++
	snapshot, version := s.state, s.version
	s.wg.Add(1)
	s.mu.Unlock()

	s.notify(snapshot, version)

	go func() {
		defer s.wg.Done()
		defer cancel()

		onProgress := func(p ProgressSnapshot) {
			s.update(gen, func(st *ViewState) {
				st.Fetched = max(st.Fetched, p.Fetched)
				st.Total = p.Total
			})
		}
		result, _ := s.loader.LoadWithProgress(ctx, id, onProgress)
		s.update(gen, func(st *ViewState) {
			*st = *result
		})
	}()
}

// Reload restarts the cycle for the current identifier.
func (s *Session) Reload() {
	s.SetID(s.ID())
}

// ID returns the current identifier.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ID
}

// Snapshot returns a copy of the current view state.
func (s *Session) Snapshot() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Wait blocks until every started cycle has finished.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close cancels the in-flight cycle and waits for it to return.
func (s *Session) Close() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	s.state.Loading = false
	s.mu.Unlock()
	s.wg.Wait()
}

// update applies fn to the state if gen is still current and reports the change.
func (s *Session) update(gen uint64, fn func(*ViewState)) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		s.loader.logger.Debug().
			Uint64("generation", gen).
			Msg("dropping stale fetch result")
		return
	}
	fn(&s.state)
	s.version++
	snapshot, version := s.state, s.version
	s.mu.Unlock()

	s.notify(snapshot, version)
}

func (s *Session) notify(state ViewState, version uint64) {
	if s.onChange == nil {
		return
	}
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if version <= s.notified {
		return
	}
	s.notified = version
	s.onChange(state)
}
