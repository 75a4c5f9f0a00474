package editedlosses

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davisxavier1984/papprefeito/internal/utils"
)

func TestServiceSave(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	t.Run("should stamp the edition time and persist", func(t *testing.T) {
		// given
		repo := NewStubRepo()
		service := NewService(repo, &utils.MockClock{FixedNow: now})

		// when
		saved, err := service.Save(context.Background(), EditedMunicipality{
			CodigoIbge:         "261160",
			Competencia:        "202501",
			PercaRecursoMensal: []float64{100, 200},
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, now, saved.DataEdicao)
		stored, err := repo.Get(context.Background(), "261160", "202501")
		require.NoError(t, err)
		assert.Equal(t, []float64{100, 200}, stored.PercaRecursoMensal)
	})

	t.Run("should clamp non-finite and negative loss values to zero", func(t *testing.T) {
		// given
		repo := NewStubRepo()
		service := NewService(repo, &utils.MockClock{FixedNow: now})

		// when
		saved, err := service.Save(context.Background(), EditedMunicipality{
			CodigoIbge:         "261160",
			Competencia:        "202501",
			PercaRecursoMensal: []float64{100, math.NaN(), math.Inf(1), -50, 200},
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []float64{100, 0, 0, 0, 200}, saved.PercaRecursoMensal)
	})

	t.Run("should reject an invalid municipality code", func(t *testing.T) {
		// given
		service := NewService(NewStubRepo(), &utils.MockClock{FixedNow: now})

		// when
		_, err := service.Save(context.Background(), EditedMunicipality{
			CodigoIbge:  "12ab",
			Competencia: "202501",
		})

		// then
		assert.Error(t, err)
	})

	t.Run("should reject an out of range competência", func(t *testing.T) {
		// given
		service := NewService(NewStubRepo(), &utils.MockClock{FixedNow: now})

		// when
		_, err := service.Save(context.Background(), EditedMunicipality{
			CodigoIbge:  "261160",
			Competencia: "201912",
		})

		// then
		assert.Error(t, err)
	})
}

func TestServiceGet(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	t.Run("should propagate ErrNotFound from the repository", func(t *testing.T) {
		// given
		service := NewService(NewStubRepo(), &utils.MockClock{FixedNow: now})

		// when
		_, err := service.Get(context.Background(), "261160", "202501")

		// then
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
