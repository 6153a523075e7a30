package memory

import (
	"context"
	"sync"

	"github.com/openfooty/statsync/internal/domain/country"
)

type CountryRepository struct {
	mu       sync.RWMutex
	byName   map[string]country.Country
	altNames map[string]country.Country
}

func NewCountryRepository(countries []country.Country, altNames map[string]int64) *CountryRepository {
	repo := &CountryRepository{
		byName:   make(map[string]country.Country, len(countries)),
		altNames: make(map[string]country.Country, len(altNames)),
	}
	byID := make(map[int64]country.Country, len(countries))
	for _, c := range countries {
		repo.byName[c.Name] = c
		byID[c.ID] = c
	}
	for alt, id := range altNames {
		if c, ok := byID[id]; ok {
			repo.altNames[alt] = c
		}
	}

	return repo
}

func (r *CountryRepository) GetByName(_ context.Context, name string) (country.Country, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byName[name]
	return c, ok, nil
}

func (r *CountryRepository) GetByAltName(_ context.Context, name string) (country.Country, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.altNames[name]
	return c, ok, nil
}
