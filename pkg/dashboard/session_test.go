package dashboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davisxavier1984/papprefeito/internal/utils"
	"github.com/davisxavier1984/papprefeito/pkg/autosave"
	"github.com/davisxavier1984/papprefeito/pkg/editedlosses"
)

type capturingPersister struct {
	mu    sync.Mutex
	saved []editedlosses.EditedMunicipality
}

func (p *capturingPersister) Save(ctx context.Context, record editedlosses.EditedMunicipality) (editedlosses.EditedMunicipality, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saved = append(p.saved, record)
	return record, nil
}

func (p *capturingPersister) savedRecords() []editedlosses.EditedMunicipality {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]editedlosses.EditedMunicipality{}, p.saved...)
}

func TestSessionRegistry(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}

	t.Run("should reuse the same session for a user", func(t *testing.T) {
		// given
		registry := NewRegistry(&capturingPersister{}, autosave.NewRecordCache(), clock, time.Hour)

		// when
		first := registry.Session("user-1")
		second := registry.Session("user-1")
		other := registry.Session("user-2")

		// then
		assert.Same(t, first, second)
		assert.NotSame(t, first, other)
	})

	t.Run("should create a fresh session after release", func(t *testing.T) {
		// given
		registry := NewRegistry(&capturingPersister{}, autosave.NewRecordCache(), clock, time.Hour)
		first := registry.Session("user-1")

		// when
		registry.Release("user-1")

		// then
		assert.NotSame(t, first, registry.Session("user-1"))
	})

	t.Run("should schedule an autosave when a loss value is edited", func(t *testing.T) {
		// given
		persister := &capturingPersister{}
		registry := NewRegistry(persister, autosave.NewRecordCache(), clock, 10*time.Millisecond)
		session := registry.Session("user-1")
		defer registry.Release("user-1")
		require.NoError(t, session.Store.IngestSnapshot(context.Background(), testSnapshot()))

		// when
		_, err := session.Store.SetLossValue(context.Background(), 0, 100)
		require.NoError(t, err)

		// then the edited record reaches the persister after the debounce
		require.Eventually(t, func() bool {
			return len(persister.savedRecords()) == 1
		}, time.Second, 5*time.Millisecond)
		saved := persister.savedRecords()[0]
		assert.Equal(t, "261160", saved.CodigoIbge)
		assert.Equal(t, "202501", saved.Competencia)
		assert.Equal(t, []float64{100, 0, 0}, saved.PercaRecursoMensal)
	})

	t.Run("should collapse rapid edits into one save with the final values", func(t *testing.T) {
		// given
		persister := &capturingPersister{}
		registry := NewRegistry(persister, autosave.NewRecordCache(), clock, 20*time.Millisecond)
		session := registry.Session("user-1")
		defer registry.Release("user-1")
		require.NoError(t, session.Store.IngestSnapshot(context.Background(), testSnapshot()))

		// when
		for _, value := range []float64{10, 20, 30} {
			_, err := session.Store.SetLossValue(context.Background(), 1, value)
			require.NoError(t, err)
		}

		// then
		require.Eventually(t, func() bool {
			return len(persister.savedRecords()) == 1
		}, time.Second, 5*time.Millisecond)
		assert.Equal(t, []float64{0, 30, 0}, persister.savedRecords()[0].PercaRecursoMensal)
	})
}

func TestSessionClose(t *testing.T) {
	t.Run("should drop pending edits on close", func(t *testing.T) {
		// given
		persister := &capturingPersister{}
		clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
		registry := NewRegistry(persister, autosave.NewRecordCache(), clock, 20*time.Millisecond)
		session := registry.Session("user-1")
		require.NoError(t, session.Store.IngestSnapshot(context.Background(), testSnapshot()))
		_, err := session.Store.SetLossValue(context.Background(), 0, 100)
		require.NoError(t, err)

		// when
		registry.Release("user-1")

		// then
		time.Sleep(50 * time.Millisecond)
		assert.Empty(t, persister.savedRecords())
	})
}
