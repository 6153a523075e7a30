package fixture

import "context"

// Repository exposes fixture and gameweek-link read operations.
type Repository interface {
	GetByID(ctx context.Context, fixtureID int64) (Fixture, bool, error)
	GetGameweekID(ctx context.Context, season, round int) (int64, bool, error)
}
