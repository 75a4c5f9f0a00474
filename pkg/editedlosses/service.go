package editedlosses

import (
	"context"
	"fmt"
	"math"

	"github.com/davisxavier1984/papprefeito/internal/utils"
	"github.com/davisxavier1984/papprefeito/pkg/funding"
)

type Service interface {
	// Get returns the stored edits for a municipality+competência, or
	// ErrNotFound when the pair was never edited.
	Get(ctx context.Context, codigoIbge string, competencia string) (EditedMunicipality, error)
	// Save validates, sanitizes and stores the record, stamping the edition
	// time. Non-finite and negative loss values are clamped to zero.
	Save(ctx context.Context, record EditedMunicipality) (EditedMunicipality, error)
	GetAll(ctx context.Context) ([]EditedMunicipality, error)
	Delete(ctx context.Context, codigoIbge string, competencia string) (bool, error)
}

type ServiceImpl struct {
	repo  Repo
	clock utils.Clock
}

func NewService(repo Repo, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) Get(ctx context.Context, codigoIbge string, competencia string) (EditedMunicipality, error) {
	if err := validateKey(codigoIbge, competencia); err != nil {
		return EditedMunicipality{}, err
	}
	return s.repo.Get(ctx, codigoIbge, competencia)
}

func (s *ServiceImpl) Save(ctx context.Context, record EditedMunicipality) (EditedMunicipality, error) {
	if err := validateKey(record.CodigoIbge, record.Competencia); err != nil {
		return EditedMunicipality{}, err
	}

	record.PercaRecursoMensal = SanitizeLosses(record.PercaRecursoMensal)
	record.DataEdicao = s.clock.Now()

	if err := s.repo.Upsert(ctx, record); err != nil {
		return EditedMunicipality{}, fmt.Errorf("failed to save edited municipality: %w", err)
	}
	return record, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]EditedMunicipality, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Delete(ctx context.Context, codigoIbge string, competencia string) (bool, error) {
	if err := validateKey(codigoIbge, competencia); err != nil {
		return false, err
	}
	return s.repo.Delete(ctx, codigoIbge, competencia)
}

// SanitizeLosses replaces NaN, infinite and negative loss values with zero.
// The result is always a fresh slice, never nil.
func SanitizeLosses(losses []float64) []float64 {
	sanitized := make([]float64, len(losses))
	for i, v := range losses {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			continue
		}
		sanitized[i] = v
	}
	return sanitized
}

func validateKey(codigoIbge string, competencia string) error {
	if err := funding.ValidateCodigoIbge(codigoIbge); err != nil {
		return err
	}
	return funding.ValidateCompetencia(competencia)
}
