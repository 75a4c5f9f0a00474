package funding

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/davisxavier1984/papprefeito/internal/utils"
	log "github.com/sirupsen/logrus"
)

// maxCompetenciaProbes bounds how many months LatestCompetencia walks back
// before giving up. Reports are usually published with a two month delay.
const maxCompetenciaProbes = 12

type Service interface {
	// Consultar returns the funding snapshot for a municipality+competência,
	// serving from the in-memory cache unless forceRefresh is set.
	Consultar(ctx context.Context, codigoIbge string, competencia string, forceRefresh bool) (*Snapshot, error)
	// LatestCompetencia finds the most recent competência the upstream API
	// has data for, probing backwards from the current month.
	LatestCompetencia(ctx context.Context) (string, error)
}

type ServiceImpl struct {
	client Client
	clock  utils.Clock

	mu    sync.RWMutex
	cache map[snapshotKey]*Snapshot

	// probeIbge is the municipality used to probe for the latest published
	// competência. Any municipality works; publication is nationwide.
	probeIbge string
}

func NewService(client Client, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		client:    client,
		clock:     clock,
		cache:     make(map[snapshotKey]*Snapshot),
		probeIbge: "355030", // São Paulo
	}
}

func (s *ServiceImpl) Consultar(ctx context.Context, codigoIbge string, competencia string, forceRefresh bool) (*Snapshot, error) {
	key := snapshotKey{codigoIbge, competencia}

	if !forceRefresh {
		s.mu.RLock()
		cached, ok := s.cache[key]
		s.mu.RUnlock()
		if ok {
			log.Debugf("serving funding snapshot for %s/%s from cache", codigoIbge, competencia)
			return cached, nil
		}
	}

	snapshot, err := s.client.FetchSnapshot(ctx, codigoIbge, competencia)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch funding snapshot: %w", err)
	}

	s.mu.Lock()
	s.cache[key] = snapshot
	s.mu.Unlock()

	return snapshot, nil
}

func (s *ServiceImpl) LatestCompetencia(ctx context.Context) (string, error) {
	month := s.clock.Now()
	for i := 0; i < maxCompetenciaProbes; i++ {
		competencia := month.Format("200601")
		_, err := s.client.FetchSnapshot(ctx, s.probeIbge, competencia)
		if err == nil {
			return competencia, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return "", fmt.Errorf("failed to probe competência %s: %w", competencia, err)
		}
		month = month.AddDate(0, -1, 0)
	}
	return "", fmt.Errorf("no published competência found in the last %d months", maxCompetenciaProbes)
}
