package dashboard

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davisxavier1984/papprefeito/internal/utils"
	"github.com/davisxavier1984/papprefeito/pkg/editedlosses"
	"github.com/davisxavier1984/papprefeito/pkg/funding"
)

func testSnapshot() *funding.Snapshot {
	return &funding.Snapshot{
		CodigoIbge:  "261160",
		Competencia: "202501",
		Resumos: []funding.BudgetLineSummary{
			{DsPlanoOrcamentario: "Incentivo Financeiro - Equipes de Saúde da Família", VlEfetivoRepasse: 1000},
			{DsPlanoOrcamentario: "Agentes Comunitários de Saúde", VlEfetivoRepasse: 500},
			{DsPlanoOrcamentario: "Incentivo per capita", VlEfetivoRepasse: 250},
		},
		Pagamentos: []funding.PaymentDetail{{QtEsfCredenciado: 5, QtTetoEsf: 10}},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	return NewStore(clock, nil)
}

func TestStoreIngestSnapshot(t *testing.T) {
	t.Run("should derive rows with zero losses before any edit", func(t *testing.T) {
		// given
		store := newTestStore(t)

		// when
		err := store.IngestSnapshot(context.Background(), testSnapshot())

		// then
		require.NoError(t, err)
		rows := store.Rows()
		require.Len(t, rows, 3)
		assert.Equal(t, 1000.0, rows[0].RecursoReal)
		assert.Equal(t, 0.0, rows[0].PercaRecursoMensal)
		assert.Equal(t, 1000.0, rows[0].RecursoPotencial)
		assert.Equal(t, 12000.0, rows[0].RecursoRealAnual)
		assert.Equal(t, 12000.0, rows[0].RecursoPotencialAnual)
		assert.Equal(t, 0.0, rows[0].Diferenca)
	})

	t.Run("should derive program cards from the snapshot", func(t *testing.T) {
		// given
		store := newTestStore(t)

		// when
		require.NoError(t, store.IngestSnapshot(context.Background(), testSnapshot()))

		// then
		breakdowns := store.Programs()
		assert.NotEmpty(t, breakdowns)
	})

	t.Run("should reject a nil snapshot", func(t *testing.T) {
		store := newTestStore(t)
		assert.Error(t, store.IngestSnapshot(context.Background(), nil))
	})
}

func TestStoreIngestEditedLosses(t *testing.T) {
	t.Run("should apply saved losses positionally to the rows", func(t *testing.T) {
		// given
		store := newTestStore(t)
		require.NoError(t, store.IngestSnapshot(context.Background(), testSnapshot()))

		// when
		err := store.IngestEditedLosses(editedlosses.EditedMunicipality{
			CodigoIbge:         "261160",
			Competencia:        "202501",
			PercaRecursoMensal: []float64{100, 0, 50},
		})

		// then
		require.NoError(t, err)
		rows := store.Rows()
		assert.Equal(t, 1100.0, rows[0].RecursoPotencial)
		assert.Equal(t, 13200.0, rows[0].RecursoPotencialAnual)
		assert.Equal(t, 1200.0, rows[0].Diferenca)
		assert.Equal(t, 300.0, rows[2].RecursoPotencial)
	})

	t.Run("should fail without a loaded snapshot", func(t *testing.T) {
		store := newTestStore(t)
		err := store.IngestEditedLosses(editedlosses.EditedMunicipality{})
		assert.Error(t, err)
	})

	t.Run("should treat missing trailing values as zero", func(t *testing.T) {
		// given a record shorter than the budget line list
		store := newTestStore(t)
		require.NoError(t, store.IngestSnapshot(context.Background(), testSnapshot()))

		// when
		require.NoError(t, store.IngestEditedLosses(editedlosses.EditedMunicipality{
			PercaRecursoMensal: []float64{100},
		}))

		// then
		rows := store.Rows()
		assert.Equal(t, 100.0, rows[0].PercaRecursoMensal)
		assert.Equal(t, 0.0, rows[1].PercaRecursoMensal)
		assert.Equal(t, 0.0, rows[2].PercaRecursoMensal)
	})
}

func TestStoreSetLossValue(t *testing.T) {
	t.Run("should keep the summary consistent with the rows after every edit", func(t *testing.T) {
		// given
		store := newTestStore(t)
		require.NoError(t, store.IngestSnapshot(context.Background(), testSnapshot()))

		edits := []struct {
			index int
			value float64
		}{{0, 100}, {1, 30}, {0, 80}, {2, 20}}

		for _, edit := range edits {
			// when
			_, err := store.SetLossValue(context.Background(), edit.index, edit.value)
			require.NoError(t, err)

			// then
			rows := store.Rows()
			summary, ok := store.Summary()
			require.True(t, ok)
			var totalPerca, totalDiferenca, totalRecebido float64
			for _, row := range rows {
				totalPerca += row.PercaRecursoMensal
				totalDiferenca += row.Diferenca
				totalRecebido += row.RecursoReal
			}
			assert.Equal(t, totalPerca, summary.TotalPercaMensal)
			assert.Equal(t, totalDiferenca, summary.TotalDiferencaAnual)
			assert.Equal(t, totalRecebido, summary.TotalRecebido)
		}
	})

	t.Run("should compute the annual loss percentage", func(t *testing.T) {
		// given total real of 1750/month
		store := newTestStore(t)
		require.NoError(t, store.IngestSnapshot(context.Background(), testSnapshot()))

		// when a monthly loss of 175 is projected
		_, err := store.SetLossValue(context.Background(), 0, 175)
		require.NoError(t, err)

		// then the annual difference is 10% of the annual real
		summary, ok := store.Summary()
		require.True(t, ok)
		assert.InDelta(t, 10.0, summary.PercentualPerdaAnual, 0.001)
	})

	t.Run("should clamp negative and non-finite values to zero", func(t *testing.T) {
		// given
		store := newTestStore(t)
		require.NoError(t, store.IngestSnapshot(context.Background(), testSnapshot()))
		_, err := store.SetLossValue(context.Background(), 0, 50)
		require.NoError(t, err)

		for _, value := range []float64{-50, math.NaN(), math.Inf(1), math.Inf(-1)} {
			// when
			record, err := store.SetLossValue(context.Background(), 0, value)

			// then
			require.NoError(t, err)
			assert.Equal(t, 0.0, record.PercaRecursoMensal[0])
			rows := store.Rows()
			assert.Equal(t, 0.0, rows[0].PercaRecursoMensal)
			assert.Equal(t, rows[0].RecursoReal, rows[0].RecursoPotencial)
		}
	})

	t.Run("should reject an out of range line index", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.IngestSnapshot(context.Background(), testSnapshot()))

		_, err := store.SetLossValue(context.Background(), 3, 100)
		assert.Error(t, err)
		_, err = store.SetLossValue(context.Background(), -1, 100)
		assert.Error(t, err)
	})

	t.Run("should stamp the edit with the current time", func(t *testing.T) {
		// given
		now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
		store := NewStore(&utils.MockClock{FixedNow: now}, nil)
		require.NoError(t, store.IngestSnapshot(context.Background(), testSnapshot()))

		// when
		record, err := store.SetLossValue(context.Background(), 0, 100)

		// then
		require.NoError(t, err)
		assert.Equal(t, now, record.DataEdicao)
	})

	t.Run("should fail without a loaded snapshot", func(t *testing.T) {
		store := newTestStore(t)
		_, err := store.SetLossValue(context.Background(), 0, 100)
		assert.Error(t, err)
	})
}

func TestStoreSelection(t *testing.T) {
	t.Run("should clear derived data when the selection changes", func(t *testing.T) {
		// given a fully loaded store
		store := newTestStore(t)
		require.NoError(t, store.IngestSnapshot(context.Background(), testSnapshot()))
		_, err := store.SetLossValue(context.Background(), 0, 100)
		require.NoError(t, err)

		// when
		store.SelectMunicipio("355030", "São Paulo")

		// then
		assert.Empty(t, store.Rows())
		_, ok := store.Summary()
		assert.False(t, ok)
		assert.Empty(t, store.Programs())
		assert.Nil(t, store.Snapshot())
		_, edited := store.EditedRecord()
		assert.False(t, edited)
	})

	t.Run("should keep the UF when selecting a municipality", func(t *testing.T) {
		// given
		store := newTestStore(t)
		store.SelectUF("PE")

		// when
		store.SelectMunicipio("261160", "Recife")

		// then
		selection := store.Selection()
		assert.Equal(t, "PE", selection.UF)
		assert.Equal(t, "261160", selection.CodigoIbge)
		assert.Equal(t, "Recife", selection.NomeMunicipio)
	})
}
