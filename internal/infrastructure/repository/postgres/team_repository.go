package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openfooty/statsync/internal/domain/team"
	qb "github.com/openfooty/statsync/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

type teamTableModel struct {
	ID             int64         `db:"id"`
	Name           string        `db:"name"`
	FootballDataID sql.NullInt64 `db:"football_data_id"`
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	query, args, err := qb.Select("id", "name", "football_data_id").From("teams").
		Where(qb.Eq("id", teamID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team: %w", err)
	}

	return team.Team{
		ID:             row.ID,
		Name:           row.Name,
		FootballDataID: nullToInt64Ptr(row.FootballDataID),
	}, true, nil
}

func (r *TeamRepository) ListNamesByPlayer(ctx context.Context, playerID int64) ([]string, error) {
	query, args, err := qb.Select("DISTINCT t.name").
		From("teams t JOIN fixture_participations fp ON fp.team_id = t.id").
		Where(qb.Eq("fp.player_id", playerID)).
		OrderBy("t.name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team names by player query: %w", err)
	}

	var names []string
	if err := r.db.SelectContext(ctx, &names, query, args...); err != nil {
		return nil, fmt.Errorf("select team names by player: %w", err)
	}

	return names, nil
}
