package editedlosses

import (
	"context"
	"sort"
	"sync"
)

type recordKey struct {
	codigoIbge  string
	competencia string
}

// StubRepo is an in-memory Repo used in tests.
type StubRepo struct {
	mu        sync.RWMutex
	records   map[recordKey]EditedMunicipality
	upsertErr error
}

func NewStubRepo() *StubRepo {
	return &StubRepo{records: make(map[recordKey]EditedMunicipality)}
}

func (s *StubRepo) Get(ctx context.Context, codigoIbge string, competencia string) (EditedMunicipality, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[recordKey{codigoIbge, competencia}]
	if !ok {
		return EditedMunicipality{}, ErrNotFound
	}
	return record, nil
}

func (s *StubRepo) Upsert(ctx context.Context, record EditedMunicipality) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.records[recordKey{record.CodigoIbge, record.Competencia}] = record
	return nil
}

func (s *StubRepo) GetAll(ctx context.Context) ([]EditedMunicipality, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]EditedMunicipality, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CodigoIbge != records[j].CodigoIbge {
			return records[i].CodigoIbge < records[j].CodigoIbge
		}
		return records[i].Competencia < records[j].Competencia
	})
	return records, nil
}

func (s *StubRepo) Delete(ctx context.Context, codigoIbge string, competencia string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := recordKey{codigoIbge, competencia}
	if _, ok := s.records[key]; !ok {
		return false, nil
	}
	delete(s.records, key)
	return true, nil
}

func (s *StubRepo) SetUpsertErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertErr = err
}
