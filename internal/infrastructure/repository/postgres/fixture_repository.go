package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openfooty/statsync/internal/domain/fixture"
	qb "github.com/openfooty/statsync/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID int64) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select(
		"id",
		"season",
		"gameweek_id",
		"home_team_id",
		"away_team_id",
		"football_data_id",
		"kickoff_at",
	).From("fixtures").
		Where(qb.Eq("id", fixtureID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build select fixture query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("select fixture: %w", err)
	}

	return row.toDomain(), true, nil
}

// GetGameweekID resolves the gameweek row linked to a fantasy round
// within one season. Round numbers repeat across seasons, so season
// always scopes the lookup.
func (r *FixtureRepository) GetGameweekID(ctx context.Context, season, round int) (int64, bool, error) {
	query, args, err := qb.Select("id").From("gameweeks").
		Where(
			qb.Eq("season", season),
			qb.Eq("round", round),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return 0, false, fmt.Errorf("build select gameweek query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("select gameweek season=%d round=%d: %w", season, round, err)
	}

	return id, true, nil
}
