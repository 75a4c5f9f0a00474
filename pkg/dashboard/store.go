package dashboard

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/davisxavier1984/papprefeito/internal/event_bus"
	"github.com/davisxavier1984/papprefeito/internal/utils"
	"github.com/davisxavier1984/papprefeito/pkg/editedlosses"
	"github.com/davisxavier1984/papprefeito/pkg/funding"
	"github.com/davisxavier1984/papprefeito/pkg/programs"
)

// Store holds one user's dashboard state: the selection, the raw funding
// snapshot, the user's loss edits and everything derived from them. All
// derived data is recomputed in full on every change; values are small
// (dozens of budget lines) so consistency is worth more than incremental
// updates.
type Store struct {
	clock utils.Clock
	bus   *event_bus.EventBus

	mu        sync.RWMutex
	selection Selection
	snapshot  *funding.Snapshot
	edited    *editedlosses.EditedMunicipality

	rows      []ProcessedRow
	summary   *FinancialSummary
	breakdown []programs.ProgramBreakdown
	dental    *programs.DentalDetail
}

func NewStore(clock utils.Clock, bus *event_bus.EventBus) *Store {
	return &Store{clock: clock, bus: bus}
}

// SelectUF sets the state and clears everything downstream of it.
func (s *Store) SelectUF(uf string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = Selection{UF: uf}
	s.resetDerived()
}

// SelectMunicipio sets the municipality, keeping the UF.
func (s *Store) SelectMunicipio(codigoIbge string, nome string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = Selection{UF: s.selection.UF, CodigoIbge: codigoIbge, NomeMunicipio: nome}
	s.resetDerived()
}

// SelectCompetencia sets the competência, keeping UF and municipality.
func (s *Store) SelectCompetencia(competencia string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Competencia = competencia
	s.resetDerived()
}

func (s *Store) resetDerived() {
	s.snapshot = nil
	s.edited = nil
	s.rows = nil
	s.summary = nil
	s.breakdown = nil
	s.dental = nil
}

// IngestSnapshot loads the raw funding data for the current selection and
// derives rows, program cards and the financial summary.
func (s *Store) IngestSnapshot(ctx context.Context, snapshot *funding.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("cannot ingest a nil snapshot")
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.breakdown = programs.Decompose(snapshot.Resumos, snapshot.Detail())
	s.dental = programs.DecomposeDentalDetail(snapshot.Detail())
	s.recompute()
	s.mu.Unlock()

	if s.bus != nil {
		event := event_bus.NewEvent(ctx, event_bus.SnapshotIngestedType, event_bus.SnapshotIngested{
			CodigoIbge:  snapshot.CodigoIbge,
			Competencia: snapshot.Competencia,
			LineCount:   len(snapshot.Resumos),
		})
		return s.bus.Publish(event)
	}
	return nil
}

// IngestEditedLosses loads previously saved loss edits and re-derives the
// rows. A snapshot must already be loaded.
func (s *Store) IngestEditedLosses(record editedlosses.EditedMunicipality) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return fmt.Errorf("no funding snapshot loaded")
	}
	s.edited = &record
	s.recompute()
	return nil
}

// SetLossValue updates the projected monthly loss of one budget line and
// recomputes all derived figures. Non-finite and negative values are clamped
// to zero. Returns the full edited record ready for persistence.
func (s *Store) SetLossValue(ctx context.Context, lineIndex int, value float64) (editedlosses.EditedMunicipality, error) {
	s.mu.Lock()
	if s.snapshot == nil {
		s.mu.Unlock()
		return editedlosses.EditedMunicipality{}, fmt.Errorf("no funding snapshot loaded")
	}
	if lineIndex < 0 || lineIndex >= len(s.snapshot.Resumos) {
		s.mu.Unlock()
		return editedlosses.EditedMunicipality{}, fmt.Errorf("budget line index %d out of range", lineIndex)
	}

	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		value = 0
	}

	if s.edited == nil {
		s.edited = &editedlosses.EditedMunicipality{
			CodigoIbge:  s.snapshot.CodigoIbge,
			Competencia: s.snapshot.Competencia,
		}
	}
	losses := make([]float64, len(s.snapshot.Resumos))
	copy(losses, s.edited.PercaRecursoMensal)
	losses[lineIndex] = value

	s.edited.PercaRecursoMensal = losses
	s.edited.DataEdicao = s.clock.Now()
	s.recompute()
	record := *s.edited
	record.PercaRecursoMensal = append([]float64{}, losses...)
	editedAt := s.edited.DataEdicao
	s.mu.Unlock()

	if s.bus != nil {
		event := event_bus.NewEvent(ctx, event_bus.LossValueEditedType, event_bus.LossValueEdited{
			CodigoIbge:  record.CodigoIbge,
			Competencia: record.Competencia,
			LineIndex:   lineIndex,
			Value:       value,
			EditedAt:    editedAt,
		})
		if err := s.bus.Publish(event); err != nil {
			return record, err
		}
	}
	return record, nil
}

// recompute rebuilds rows and summary from the snapshot and current edits.
// Callers must hold the write lock.
func (s *Store) recompute() {
	if s.snapshot == nil {
		s.rows = nil
		s.summary = nil
		return
	}

	rows := make([]ProcessedRow, 0, len(s.snapshot.Resumos))
	for i, resumo := range s.snapshot.Resumos {
		loss := 0.0
		if s.edited != nil && i < len(s.edited.PercaRecursoMensal) {
			loss = s.edited.PercaRecursoMensal[i]
		}
		real := resumo.VlEfetivoRepasse
		rows = append(rows, ProcessedRow{
			Recurso:               resumo.DsPlanoOrcamentario,
			RecursoReal:           real,
			PercaRecursoMensal:    loss,
			RecursoPotencial:      real + loss,
			RecursoRealAnual:      real * 12,
			RecursoPotencialAnual: (real + loss) * 12,
			Diferenca:             (real+loss)*12 - real*12,
		})
	}
	s.rows = rows

	if len(rows) == 0 {
		s.summary = nil
		return
	}

	var summary FinancialSummary
	totalRealAnual := 0.0
	for _, row := range rows {
		summary.TotalPercaMensal += row.PercaRecursoMensal
		summary.TotalDiferencaAnual += row.Diferenca
		summary.TotalRecebido += row.RecursoReal
		totalRealAnual += row.RecursoRealAnual
	}
	if totalRealAnual > 0 {
		summary.PercentualPerdaAnual = summary.TotalDiferencaAnual / totalRealAnual * 100
	}
	s.summary = &summary
}

func (s *Store) Selection() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

func (s *Store) Snapshot() *funding.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Rows returns a copy of the processed budget lines.
func (s *Store) Rows() []ProcessedRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ProcessedRow{}, s.rows...)
}

// Summary returns the aggregated figures, or false when nothing is loaded.
func (s *Store) Summary() (FinancialSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.summary == nil {
		return FinancialSummary{}, false
	}
	return *s.summary, true
}

// Programs returns a copy of the per-program breakdown cards.
func (s *Store) Programs() []programs.ProgramBreakdown {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]programs.ProgramBreakdown{}, s.breakdown...)
}

// DentalDetail returns the oral health drill-down, or nil when no payment
// record is loaded.
func (s *Store) DentalDetail() *programs.DentalDetail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dental
}

// EditedRecord returns a copy of the current loss edits, or false when the
// user has not edited anything for this selection.
func (s *Store) EditedRecord() (editedlosses.EditedMunicipality, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.edited == nil {
		return editedlosses.EditedMunicipality{}, false
	}
	record := *s.edited
	record.PercaRecursoMensal = append([]float64{}, s.edited.PercaRecursoMensal...)
	return record, true
}
