package participation

import "context"

// Repository describes fixture-participation persistence needs from
// use cases. Uniqueness of the (player, fixture, team) triple is
// enforced by the schema, not by callers.
type Repository interface {
	Get(ctx context.Context, playerID, fixtureID, teamID int64) (Participation, bool, error)
	Insert(ctx context.Context, p Participation) error
	// SetAdvancedMetrics writes the advanced block in one update. It
	// never touches attendance columns.
	SetAdvancedMetrics(ctx context.Context, playerID, fixtureID, teamID int64, m AdvancedMetrics) error
}
