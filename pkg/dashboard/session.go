package dashboard

import (
	"sync"
	"time"

	"github.com/davisxavier1984/papprefeito/internal/event_bus"
	"github.com/davisxavier1984/papprefeito/internal/utils"
	"github.com/davisxavier1984/papprefeito/pkg/autosave"
)

// Session bundles one user's dashboard store with its autosave pipeline.
// Loss edits flow through the session's event bus: the store publishes and
// the synchronizer picks the edit up, so persistence never blocks the edit.
type Session struct {
	Store *Store
	Sync  *autosave.Synchronizer

	unsubscribe func()
}

func newSession(persister autosave.Persister, cache *autosave.RecordCache, clock utils.Clock, debounce time.Duration) *Session {
	bus := event_bus.NewEventBus()
	store := NewStore(clock, bus)
	synchronizer := autosave.NewSynchronizer(persister, cache, debounce)

	unsubscribe := event_bus.SubscribeTyped[event_bus.LossValueEdited](bus, event_bus.LossValueEditedType,
		func(e event_bus.EventT[event_bus.LossValueEdited]) error {
			record, ok := store.EditedRecord()
			if !ok {
				return nil
			}
			synchronizer.Trigger(e.Context(), record)
			return nil
		})

	return &Session{
		Store:       store,
		Sync:        synchronizer,
		unsubscribe: unsubscribe,
	}
}

// Close stops the autosave timer and detaches the session from its bus. Any
// pending edit is dropped; callers wanting it saved should Flush first.
func (s *Session) Close() {
	s.Sync.Stop()
	s.unsubscribe()
}

// Registry hands out one dashboard session per user, created lazily on first
// access. The autosave cache is shared so a user reconnecting sees their
// in-flight edits.
type Registry struct {
	persister autosave.Persister
	cache     *autosave.RecordCache
	clock     utils.Clock
	debounce  time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(persister autosave.Persister, cache *autosave.RecordCache, clock utils.Clock, debounce time.Duration) *Registry {
	return &Registry{
		persister: persister,
		cache:     cache,
		clock:     clock,
		debounce:  debounce,
		sessions:  make(map[string]*Session),
	}
}

func (r *Registry) Session(userID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[userID]
	if !ok {
		session = newSession(r.persister, r.cache, r.clock, r.debounce)
		r.sessions[userID] = session
	}
	return session
}

// Release closes and removes a user's session, typically on logout.
func (r *Registry) Release(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session, ok := r.sessions[userID]; ok {
		session.Close()
		delete(r.sessions, userID)
	}
}
