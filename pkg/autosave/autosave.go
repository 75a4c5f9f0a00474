package autosave

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/davisxavier1984/papprefeito/pkg/editedlosses"
)

// Status reflects where the synchronizer is in its save cycle.
type Status string

const (
	StatusIdle   Status = "idle"
	StatusSaving Status = "saving"
	StatusSaved  Status = "saved"
	StatusError  Status = "error"
)

// Persister stores an edit record. editedlosses.Service satisfies it.
type Persister interface {
	Save(ctx context.Context, record editedlosses.EditedMunicipality) (editedlosses.EditedMunicipality, error)
}

// Synchronizer debounces edit bursts into a single save. Every Trigger
// applies the record to the cache immediately and restarts the timer; only
// the last record of a burst reaches the persister. On failure the cache is
// rolled back to the state before the burst.
//
// Each trigger bumps a version counter. A save result is applied only when
// no newer trigger happened while it was in flight, so a slow response can
// never overwrite fresher edits.
type Synchronizer struct {
	persister Persister
	cache     *RecordCache
	debounce  time.Duration

	mu          sync.Mutex
	timer       *time.Timer
	pending     *editedlosses.EditedMunicipality
	prevRecord  editedlosses.EditedMunicipality
	prevExisted bool
	version     uint64
	status      Status
	lastErr     error
}

func NewSynchronizer(persister Persister, cache *RecordCache, debounce time.Duration) *Synchronizer {
	return &Synchronizer{
		persister: persister,
		cache:     cache,
		debounce:  debounce,
		status:    StatusIdle,
	}
}

// Trigger applies the record optimistically and (re)starts the debounce
// timer. The save fires only after the burst goes quiet.
func (s *Synchronizer) Trigger(ctx context.Context, record editedlosses.EditedMunicipality) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		s.prevRecord, s.prevExisted = s.cache.Get(record.CodigoIbge, record.Competencia)
	}
	s.pending = &record
	s.cache.Put(record)
	s.version++
	version := s.version

	if s.timer != nil {
		s.timer.Stop()
	}
	saveCtx := context.WithoutCancel(ctx)
	s.timer = time.AfterFunc(s.debounce, func() {
		s.save(saveCtx, version)
	})
}

// Flush saves any pending record immediately, skipping the debounce wait.
func (s *Synchronizer) Flush(ctx context.Context) {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	version := s.version
	s.mu.Unlock()
	s.save(ctx, version)
}

// Stop cancels any pending save without persisting or rolling back.
func (s *Synchronizer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
}

func (s *Synchronizer) save(ctx context.Context, version uint64) {
	s.mu.Lock()
	if version != s.version || s.pending == nil {
		s.mu.Unlock()
		return
	}
	record := *s.pending
	prevRecord, prevExisted := s.prevRecord, s.prevExisted
	s.status = StatusSaving
	s.mu.Unlock()

	saved, err := s.persister.Save(ctx, record)

	s.mu.Lock()
	defer s.mu.Unlock()
	if version != s.version {
		// A newer edit owns the cache now; this result is stale.
		return
	}
	if err != nil {
		log.Errorf("autosave failed for %s/%s: %v", record.CodigoIbge, record.Competencia, err)
		if prevExisted {
			s.cache.Put(prevRecord)
		} else {
			s.cache.Delete(record.CodigoIbge, record.Competencia)
		}
		s.pending = nil
		s.status = StatusError
		s.lastErr = err
		return
	}

	s.cache.Put(saved)
	s.pending = nil
	s.status = StatusSaved
	s.lastErr = nil
}

func (s *Synchronizer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Err returns the error of the last failed save, or nil.
func (s *Synchronizer) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
