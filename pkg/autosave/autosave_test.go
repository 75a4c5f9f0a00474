package autosave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davisxavier1984/papprefeito/pkg/editedlosses"
)

type stubPersister struct {
	mu      sync.Mutex
	saved   []editedlosses.EditedMunicipality
	saveErr error
	block   chan struct{}
}

func newStubPersister() *stubPersister {
	return &stubPersister{}
}

func (p *stubPersister) Save(ctx context.Context, record editedlosses.EditedMunicipality) (editedlosses.EditedMunicipality, error) {
	if p.block != nil {
		<-p.block
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.saveErr != nil {
		return editedlosses.EditedMunicipality{}, p.saveErr
	}
	p.saved = append(p.saved, record)
	return record, nil
}

func (p *stubPersister) savedRecords() []editedlosses.EditedMunicipality {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]editedlosses.EditedMunicipality{}, p.saved...)
}

func record(losses ...float64) editedlosses.EditedMunicipality {
	return editedlosses.EditedMunicipality{
		CodigoIbge:         "261160",
		Competencia:        "202501",
		PercaRecursoMensal: losses,
	}
}

func TestSynchronizer(t *testing.T) {
	t.Run("should collapse a burst of edits into a single save", func(t *testing.T) {
		// given
		persister := newStubPersister()
		cache := NewRecordCache()
		synchronizer := NewSynchronizer(persister, cache, 20*time.Millisecond)
		defer synchronizer.Stop()

		// when three edits land within the debounce window
		synchronizer.Trigger(context.Background(), record(100))
		synchronizer.Trigger(context.Background(), record(100, 200))
		synchronizer.Trigger(context.Background(), record(100, 250))

		// then only the last one is persisted
		require.Eventually(t, func() bool {
			return synchronizer.Status() == StatusSaved
		}, time.Second, 5*time.Millisecond)
		saved := persister.savedRecords()
		require.Len(t, saved, 1)
		assert.Equal(t, []float64{100, 250}, saved[0].PercaRecursoMensal)
	})

	t.Run("should apply edits to the cache before the save completes", func(t *testing.T) {
		// given
		persister := newStubPersister()
		cache := NewRecordCache()
		synchronizer := NewSynchronizer(persister, cache, time.Hour)
		defer synchronizer.Stop()

		// when
		synchronizer.Trigger(context.Background(), record(100))

		// then the cache already reflects the edit
		cached, ok := cache.Get("261160", "202501")
		require.True(t, ok)
		assert.Equal(t, []float64{100}, cached.PercaRecursoMensal)
		assert.Empty(t, persister.savedRecords())
	})

	t.Run("should roll the cache back to the pre-burst state on failure", func(t *testing.T) {
		// given a record that was saved before
		persister := newStubPersister()
		cache := NewRecordCache()
		cache.Put(record(50))
		synchronizer := NewSynchronizer(persister, cache, 10*time.Millisecond)
		defer synchronizer.Stop()
		persister.saveErr = errors.New("database unavailable")

		// when
		synchronizer.Trigger(context.Background(), record(100))

		// then
		require.Eventually(t, func() bool {
			return synchronizer.Status() == StatusError
		}, time.Second, 5*time.Millisecond)
		assert.Error(t, synchronizer.Err())
		cached, ok := cache.Get("261160", "202501")
		require.True(t, ok)
		assert.Equal(t, []float64{50}, cached.PercaRecursoMensal)
	})

	t.Run("should drop the cache entry on failure when nothing was saved before", func(t *testing.T) {
		// given
		persister := newStubPersister()
		persister.saveErr = errors.New("database unavailable")
		cache := NewRecordCache()
		synchronizer := NewSynchronizer(persister, cache, 10*time.Millisecond)
		defer synchronizer.Stop()

		// when
		synchronizer.Trigger(context.Background(), record(100))

		// then
		require.Eventually(t, func() bool {
			return synchronizer.Status() == StatusError
		}, time.Second, 5*time.Millisecond)
		_, ok := cache.Get("261160", "202501")
		assert.False(t, ok)
	})

	t.Run("should not let a stale save result overwrite fresher edits", func(t *testing.T) {
		// given a save that hangs while the user keeps editing
		persister := newStubPersister()
		persister.block = make(chan struct{})
		cache := NewRecordCache()
		synchronizer := NewSynchronizer(persister, cache, time.Millisecond)
		defer synchronizer.Stop()

		synchronizer.Trigger(context.Background(), record(100))
		require.Eventually(t, func() bool {
			return synchronizer.Status() == StatusSaving
		}, time.Second, time.Millisecond)

		// when a fresher edit arrives and the slow save then completes
		synchronizer.Trigger(context.Background(), record(999))
		close(persister.block)

		// then the cache keeps the fresher value
		require.Eventually(t, func() bool {
			return len(persister.savedRecords()) >= 1
		}, time.Second, time.Millisecond)
		cached, ok := cache.Get("261160", "202501")
		require.True(t, ok)
		assert.Equal(t, []float64{999}, cached.PercaRecursoMensal)
	})

	t.Run("should save immediately on flush", func(t *testing.T) {
		// given
		persister := newStubPersister()
		cache := NewRecordCache()
		synchronizer := NewSynchronizer(persister, cache, time.Hour)
		defer synchronizer.Stop()
		synchronizer.Trigger(context.Background(), record(100))

		// when
		synchronizer.Flush(context.Background())

		// then
		assert.Equal(t, StatusSaved, synchronizer.Status())
		require.Len(t, persister.savedRecords(), 1)
	})
}
