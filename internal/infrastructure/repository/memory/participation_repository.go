package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/openfooty/statsync/internal/domain/participation"
)

type participationKey struct {
	playerID  int64
	fixtureID int64
	teamID    int64
}

type ParticipationRepository struct {
	mu      sync.RWMutex
	rows    map[participationKey]participation.Participation
	inserts int
}

func NewParticipationRepository() *ParticipationRepository {
	return &ParticipationRepository{
		rows: make(map[participationKey]participation.Participation),
	}
}

func (r *ParticipationRepository) InsertCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.inserts
}

func (r *ParticipationRepository) Get(_ context.Context, playerID, fixtureID, teamID int64) (participation.Participation, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[participationKey{playerID, fixtureID, teamID}]
	return row, ok, nil
}

func (r *ParticipationRepository) Insert(_ context.Context, p participation.Participation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := participationKey{p.PlayerID, p.FixtureID, p.TeamID}
	if _, exists := r.rows[key]; exists {
		return fmt.Errorf("duplicate participation player=%d fixture=%d team=%d", p.PlayerID, p.FixtureID, p.TeamID)
	}
	r.rows[key] = p
	r.inserts++

	return nil
}

func (r *ParticipationRepository) SetAdvancedMetrics(_ context.Context, playerID, fixtureID, teamID int64, m participation.AdvancedMetrics) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := participationKey{playerID, fixtureID, teamID}
	row, ok := r.rows[key]
	if !ok {
		return fmt.Errorf("participation player=%d fixture=%d team=%d not found", playerID, fixtureID, teamID)
	}
	metrics := m
	row.Advanced = &metrics
	r.rows[key] = row

	return nil
}
