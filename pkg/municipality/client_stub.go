package municipality

import (
	"context"
	"sync"
)

// ClientStub is an in-memory Client used in tests.
type ClientStub struct {
	mu             sync.RWMutex
	ufs            []UF
	municipalities map[string][]Municipality
	fetchErr       error
	fetchCalls     int
}

func NewClientStub() *ClientStub {
	return &ClientStub{municipalities: make(map[string][]Municipality)}
}

func (c *ClientStub) FetchUFs(ctx context.Context) ([]UF, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchCalls++
	if c.fetchErr != nil {
		return nil, c.fetchErr
	}
	return c.ufs, nil
}

func (c *ClientStub) FetchMunicipalities(ctx context.Context, ufSigla string) ([]Municipality, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchCalls++
	if c.fetchErr != nil {
		return nil, c.fetchErr
	}
	return c.municipalities[ufSigla], nil
}

func (c *ClientStub) SetUFs(ufs []UF) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ufs = ufs
}

func (c *ClientStub) SetMunicipalities(ufSigla string, municipalities []Municipality) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.municipalities[ufSigla] = municipalities
}

func (c *ClientStub) SetFetchErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchErr = err
}

func (c *ClientStub) FetchCalls() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchCalls
}
