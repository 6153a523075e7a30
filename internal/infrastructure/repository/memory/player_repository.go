package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/openfooty/statsync/internal/domain/player"
)

// PlayerRepository is an in-memory canonical player store used by
// tests. ID assignment and external-ID uniqueness mirror the schema
// constraints the postgres repository relies on.
type PlayerRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]player.Player
	inserts int
	// appearances maps competition ID to the players with at least one
	// recorded participation there, mirroring the candidate-pool query.
	appearances map[int64][]int64
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	repo := &PlayerRepository{
		nextID:      1,
		byID:        make(map[int64]player.Player),
		appearances: make(map[int64][]int64),
	}
	for _, p := range players {
		if p.ID >= repo.nextID {
			repo.nextID = p.ID + 1
		}
		repo.byID[p.ID] = p
	}

	return repo
}

// AddCompetitionAppearance registers a player in a competition's
// candidate pool.
func (r *PlayerRepository) AddCompetitionAppearance(competitionID, playerID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appearances[competitionID] = append(r.appearances[competitionID], playerID)
}

// InsertCount reports how many inserts have been performed, which
// idempotency tests assert on.
func (r *PlayerRepository) InsertCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.inserts
}

func (r *PlayerRepository) GetByID(_ context.Context, id int64) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	return p, ok, nil
}

func (r *PlayerRepository) GetByFootballDataID(_ context.Context, externalID int64) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.byID {
		if p.FootballDataID != nil && *p.FootballDataID == externalID {
			return p, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r *PlayerRepository) GetByFantasyID(_ context.Context, externalID int64) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.byID {
		if p.FantasyID != nil && *p.FantasyID == externalID {
			return p, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r *PlayerRepository) ListWithCompetitionAppearance(_ context.Context, competitionID int64) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.appearances[competitionID]
	out := make([]player.Player, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := r.byID[id]; ok {
			out = append(out, p)
		}
	}

	return out, nil
}

func (r *PlayerRepository) Insert(_ context.Context, p player.Player) (player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.FootballDataID != nil {
		for _, existing := range r.byID {
			if existing.FootballDataID != nil && *existing.FootballDataID == *p.FootballDataID {
				return player.Player{}, fmt.Errorf("duplicate football_data_id %d", *p.FootballDataID)
			}
		}
	}

	p.ID = r.nextID
	r.nextID++
	r.byID[p.ID] = p
	r.inserts++

	return p, nil
}

func (r *PlayerRepository) SetFantasyID(_ context.Context, playerID, fantasyID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[playerID]
	if !ok {
		return fmt.Errorf("player %d not found", playerID)
	}
	for _, existing := range r.byID {
		if existing.ID != playerID && existing.FantasyID != nil && *existing.FantasyID == fantasyID {
			return fmt.Errorf("duplicate fantasy_id %d", fantasyID)
		}
	}
	p.FantasyID = &fantasyID
	r.byID[playerID] = p

	return nil
}

func (r *PlayerRepository) SetScrapeID(_ context.Context, playerID, scrapeID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[playerID]
	if !ok {
		return fmt.Errorf("player %d not found", playerID)
	}
	for _, existing := range r.byID {
		if existing.ID != playerID && existing.ScrapeID != nil && *existing.ScrapeID == scrapeID {
			return fmt.Errorf("duplicate scrape_id %d", scrapeID)
		}
	}
	p.ScrapeID = &scrapeID
	r.byID[playerID] = p

	return nil
}
