package funding

import (
	"context"
	"sync"
)

type snapshotKey struct {
	codigoIbge  string
	competencia string
}

// ClientStub is an in-memory Client used in tests.
type ClientStub struct {
	mu               sync.RWMutex
	snapshots        map[snapshotKey]*Snapshot
	fetchSnapshotErr error
	fetchCalls       int
}

func NewClientStub() *ClientStub {
	return &ClientStub{
		snapshots: make(map[snapshotKey]*Snapshot),
	}
}

func (c *ClientStub) FetchSnapshot(ctx context.Context, codigoIbge string, competencia string) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fetchCalls++
	if c.fetchSnapshotErr != nil {
		return nil, c.fetchSnapshotErr
	}
	snapshot, ok := c.snapshots[snapshotKey{codigoIbge, competencia}]
	if !ok {
		return nil, ErrNotFound
	}
	return snapshot, nil
}

func (c *ClientStub) AddSnapshot(snapshot *Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots[snapshotKey{snapshot.CodigoIbge, snapshot.Competencia}] = snapshot
}

func (c *ClientStub) SetFetchSnapshotErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchSnapshotErr = err
}

func (c *ClientStub) FetchCalls() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchCalls
}
