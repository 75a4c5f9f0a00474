package municipality

import (
	"context"
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

type Service interface {
	// ListUFs returns every federative unit. Falls back to the static list
	// when the IBGE API is unreachable, so the selector never comes up empty.
	ListUFs(ctx context.Context) ([]UF, error)
	ListMunicipalities(ctx context.Context, ufSigla string) ([]Municipality, error)
}

type ServiceImpl struct {
	client Client

	mu             sync.RWMutex
	ufs            []UF
	municipalities map[string][]Municipality
}

func NewService(client Client) *ServiceImpl {
	return &ServiceImpl{
		client:         client,
		municipalities: make(map[string][]Municipality),
	}
}

func (s *ServiceImpl) ListUFs(ctx context.Context) ([]UF, error) {
	s.mu.RLock()
	cached := s.ufs
	s.mu.RUnlock()
	if cached != nil {
		return append([]UF{}, cached...), nil
	}

	ufs, err := s.client.FetchUFs(ctx)
	if err != nil || len(ufs) == 0 {
		log.Warnf("falling back to the static federative unit list: %v", err)
		return FallbackUFs(), nil
	}

	s.mu.Lock()
	s.ufs = ufs
	s.mu.Unlock()
	return append([]UF{}, ufs...), nil
}

func (s *ServiceImpl) ListMunicipalities(ctx context.Context, ufSigla string) ([]Municipality, error) {
	sigla := strings.ToUpper(ufSigla)
	if !IsValidUF(sigla) {
		return nil, fmt.Errorf("unknown federative unit: %q", ufSigla)
	}

	s.mu.RLock()
	cached, ok := s.municipalities[sigla]
	s.mu.RUnlock()
	if ok {
		return append([]Municipality{}, cached...), nil
	}

	municipalities, err := s.client.FetchMunicipalities(ctx, sigla)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch municipalities for %s: %w", sigla, err)
	}

	s.mu.Lock()
	s.municipalities[sigla] = municipalities
	s.mu.Unlock()
	return append([]Municipality{}, municipalities...), nil
}
