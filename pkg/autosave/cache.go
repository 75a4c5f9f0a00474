package autosave

import (
	"sync"

	"github.com/davisxavier1984/papprefeito/pkg/editedlosses"
)

// RecordCache holds the optimistically updated edit records, keyed by
// municipality and competência. Readers see edits immediately, before the
// debounced save confirms them.
type RecordCache struct {
	mu      sync.RWMutex
	entries map[string]editedlosses.EditedMunicipality
}

func NewRecordCache() *RecordCache {
	return &RecordCache{entries: make(map[string]editedlosses.EditedMunicipality)}
}

func cacheKey(codigoIbge string, competencia string) string {
	return codigoIbge + "_" + competencia
}

func (c *RecordCache) Get(codigoIbge string, competencia string) (editedlosses.EditedMunicipality, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	record, ok := c.entries[cacheKey(codigoIbge, competencia)]
	return record, ok
}

func (c *RecordCache) Put(record editedlosses.EditedMunicipality) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(record.CodigoIbge, record.Competencia)] = record
}

func (c *RecordCache) Delete(codigoIbge string, competencia string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, cacheKey(codigoIbge, competencia))
}
