package memory

import (
	"context"
	"sync"

	"github.com/openfooty/statsync/internal/domain/fantasystats"
)

type gameweekStatKey struct {
	playerID int64
	season   int
	round    int
}

type FantasyStatsRepository struct {
	mu   sync.RWMutex
	rows map[gameweekStatKey]fantasystats.GameweekStat
}

func NewFantasyStatsRepository() *FantasyStatsRepository {
	return &FantasyStatsRepository{
		rows: make(map[gameweekStatKey]fantasystats.GameweekStat),
	}
}

func (r *FantasyStatsRepository) Upsert(_ context.Context, stat fantasystats.GameweekStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[gameweekStatKey{stat.PlayerID, stat.Season, stat.Round}] = stat
	return nil
}

// Get is a test helper for asserting stored rows.
func (r *FantasyStatsRepository) Get(playerID int64, season, round int) (fantasystats.GameweekStat, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stat, ok := r.rows[gameweekStatKey{playerID, season, round}]
	return stat, ok
}

// Count reports the number of stored rows.
func (r *FantasyStatsRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows)
}
