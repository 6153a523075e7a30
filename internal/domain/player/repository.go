package player

import "context"

// Repository describes canonical player persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Player, bool, error)
	GetByFootballDataID(ctx context.Context, externalID int64) (Player, bool, error)
	GetByFantasyID(ctx context.Context, externalID int64) (Player, bool, error)
	// ListWithCompetitionAppearance returns every player with at least one
	// recorded fixture participation in the given competition. It is the
	// candidate pool for fantasy-source name matching.
	ListWithCompetitionAppearance(ctx context.Context, competitionID int64) ([]Player, error)
	Insert(ctx context.Context, p Player) (Player, error)
	SetFantasyID(ctx context.Context, playerID, fantasyID int64) error
	SetScrapeID(ctx context.Context, playerID, scrapeID int64) error
}
