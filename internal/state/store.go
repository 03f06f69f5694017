package state

import (
	"sync"

	"github.com/citywx/weather-lookup/internal/lookup"
)

// Store is the concurrency-safe holder of the single ViewState/MapPosition
// pair. Transitions are invoked only by the lookup service; readers get a
// consistent snapshot.
type Store struct {
	mu       sync.RWMutex
	status   lookup.Status
	message  string
	result   *lookup.Result
	position lookup.MapPosition
}

// NewStore creates a Store in the idle state with the default world view.
func NewStore() *Store {
	return &Store{
		status:   lookup.StatusIdle,
		position: lookup.DefaultMapPosition,
	}
}

// SetLoading marks a lookup in flight, clearing any prior error or result.
// The map position is left where it was.
func (s *Store) SetLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = lookup.StatusLoading
	s.message = ""
	s.result = nil
}

// SetError records a failed lookup. The map position is untouched.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = lookup.StatusError
	s.message = msg
	s.result = nil
}

// SetLoaded records a successful lookup and moves the map position to the
// resolved coordinates.
func (s *Store) SetLoaded(res lookup.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = lookup.StatusLoaded
	s.message = ""
	s.result = &res
	s.position = lookup.PositionFor(res.Location)
}

// View returns a copy of the current state.
func (s *Store) View() lookup.ViewSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := lookup.ViewSnapshot{
		Status:   s.status,
		Message:  s.message,
		Position: s.position,
	}
	if s.result != nil {
		res := *s.result
		snap.Result = &res
	}
	return snap
}
