package memory

import (
	"context"
	"sync"

	"github.com/openfooty/statsync/internal/domain/team"
)

type TeamRepository struct {
	mu            sync.RWMutex
	byID          map[int64]team.Team
	namesByPlayer map[int64][]string
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	repo := &TeamRepository{
		byID:          make(map[int64]team.Team, len(teams)),
		namesByPlayer: make(map[int64][]string),
	}
	for _, t := range teams {
		repo.byID[t.ID] = t
	}

	return repo
}

// SetPlayerTeams registers the participation history a test expects
// ListNamesByPlayer to report.
func (r *TeamRepository) SetPlayerTeams(playerID int64, names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namesByPlayer[playerID] = append([]string(nil), names...)
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[teamID]
	return t, ok, nil
}

func (r *TeamRepository) ListNamesByPlayer(_ context.Context, playerID int64) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.namesByPlayer[playerID]
	out := make([]string, 0, len(names))
	out = append(out, names...)

	return out, nil
}
