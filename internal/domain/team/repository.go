package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, teamID int64) (Team, bool, error)
	// ListNamesByPlayer returns the distinct names of every team the
	// player has a recorded fixture participation for.
	ListNamesByPlayer(ctx context.Context, playerID int64) ([]string, error)
}
