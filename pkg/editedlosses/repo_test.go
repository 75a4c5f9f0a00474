package editedlosses

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davisxavier1984/papprefeito/internal/test_utils"
)

func TestRepo(t *testing.T) {
	editedAt := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	t.Run("should store and read back a record", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		repo := NewRepo(db)
		record := EditedMunicipality{
			CodigoIbge:         "261160",
			Competencia:        "202501",
			PercaRecursoMensal: []float64{1000, 0, 250.5},
			DataEdicao:         editedAt,
		}

		// when
		err := repo.Upsert(context.Background(), record)

		// then
		require.NoError(t, err)
		stored, err := repo.Get(context.Background(), "261160", "202501")
		require.NoError(t, err)
		assert.Equal(t, record, stored)
	})

	t.Run("should return ErrNotFound for a municipality never edited", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		repo := NewRepo(db)

		// when
		_, err := repo.Get(context.Background(), "355030", "202501")

		// then
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should replace losses on repeated upsert for the same key", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		repo := NewRepo(db)
		record := EditedMunicipality{
			CodigoIbge:         "261160",
			Competencia:        "202501",
			PercaRecursoMensal: []float64{100},
			DataEdicao:         editedAt,
		}
		require.NoError(t, repo.Upsert(context.Background(), record))

		// when
		record.PercaRecursoMensal = []float64{100, 300}
		record.DataEdicao = editedAt.Add(time.Hour)
		err := repo.Upsert(context.Background(), record)

		// then
		require.NoError(t, err)
		stored, err := repo.Get(context.Background(), "261160", "202501")
		require.NoError(t, err)
		assert.Equal(t, []float64{100, 300}, stored.PercaRecursoMensal)
		assert.Equal(t, editedAt.Add(time.Hour), stored.DataEdicao)
	})

	t.Run("should keep edits for different competências independent", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		repo := NewRepo(db)
		january := EditedMunicipality{
			CodigoIbge: "261160", Competencia: "202501",
			PercaRecursoMensal: []float64{50}, DataEdicao: editedAt,
		}
		february := EditedMunicipality{
			CodigoIbge: "261160", Competencia: "202502",
			PercaRecursoMensal: []float64{75}, DataEdicao: editedAt,
		}
		require.NoError(t, repo.Upsert(context.Background(), january))
		require.NoError(t, repo.Upsert(context.Background(), february))

		// when
		all, err := repo.GetAll(context.Background())

		// then
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, []float64{50}, all[0].PercaRecursoMensal)
		assert.Equal(t, []float64{75}, all[1].PercaRecursoMensal)
	})

	t.Run("should delete a record and report whether it existed", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		repo := NewRepo(db)
		record := EditedMunicipality{
			CodigoIbge: "261160", Competencia: "202501",
			PercaRecursoMensal: []float64{50}, DataEdicao: editedAt,
		}
		require.NoError(t, repo.Upsert(context.Background(), record))

		// when
		deleted, err := repo.Delete(context.Background(), "261160", "202501")

		// then
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(context.Background(), "261160", "202501")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
