package memory

import (
	"context"
	"sync"

	"github.com/openfooty/statsync/internal/domain/fixture"
)

type gameweekKey struct {
	season int
	round  int
}

type FixtureRepository struct {
	mu       sync.RWMutex
	byID     map[int64]fixture.Fixture
	gameweek map[gameweekKey]int64
}

func NewFixtureRepository(fixtures []fixture.Fixture, links []fixture.GameweekLink) *FixtureRepository {
	repo := &FixtureRepository{
		byID:     make(map[int64]fixture.Fixture, len(fixtures)),
		gameweek: make(map[gameweekKey]int64, len(links)),
	}
	for _, f := range fixtures {
		repo.byID[f.ID] = f
	}
	for _, link := range links {
		repo.gameweek[gameweekKey{link.Season, link.Round}] = link.GameweekID
	}

	return repo
}

func (r *FixtureRepository) GetByID(_ context.Context, fixtureID int64) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.byID[fixtureID]
	return f, ok, nil
}

func (r *FixtureRepository) GetGameweekID(_ context.Context, season, round int) (int64, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.gameweek[gameweekKey{season, round}]
	return id, ok, nil
}
