package memory

import (
	"context"
	"sync"

	"github.com/openfooty/statsync/internal/domain/rawdata"
)

type RawDataRepository struct {
	mu   sync.RWMutex
	rows map[string]rawdata.Payload
}

func NewRawDataRepository() *RawDataRepository {
	return &RawDataRepository{rows: make(map[string]rawdata.Payload)}
}

func (r *RawDataRepository) UpsertMany(_ context.Context, items []rawdata.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.rows[item.Source+"/"+item.EntityType+"/"+item.EntityKey] = item
	}
	return nil
}

func (r *RawDataRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows)
}

func (r *RawDataRepository) Get(source, entityType, entityKey string) (rawdata.Payload, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[source+"/"+entityType+"/"+entityKey]
	return row, ok
}
