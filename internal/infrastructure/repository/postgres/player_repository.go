package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openfooty/statsync/internal/domain/player"
	qb "github.com/openfooty/statsync/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"first_name",
	"last_name",
	"country_id",
	"football_data_id",
	"fantasy_id",
	"scrape_id",
	"created_at",
	"updated_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	return r.getOne(ctx, qb.Eq("id", id))
}

func (r *PlayerRepository) GetByFootballDataID(ctx context.Context, externalID int64) (player.Player, bool, error) {
	return r.getOne(ctx, qb.Eq("football_data_id", externalID))
}

func (r *PlayerRepository) GetByFantasyID(ctx context.Context, externalID int64) (player.Player, bool, error) {
	return r.getOne(ctx, qb.Eq("fantasy_id", externalID))
}

func (r *PlayerRepository) getOne(ctx context.Context, cond qb.Condition) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(cond).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) ListWithCompetitionAppearance(ctx context.Context, competitionID int64) ([]player.Player, error) {
	columns := make([]string, 0, len(playerSelectColumns))
	for _, column := range playerSelectColumns {
		columns = append(columns, "p."+column)
	}

	query, args, err := qb.Select(columns...).
		From("players p JOIN fixture_participations fp ON fp.player_id = p.id JOIN fixtures f ON f.id = fp.fixture_id").
		Where(qb.Eq("f.competition_id", competitionID)).
		GroupBy("p.id").
		OrderBy("p.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players with appearance query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players with appearance: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) Insert(ctx context.Context, p player.Player) (player.Player, error) {
	insertModel := playerInsertModel{
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		CountryID:      p.CountryID,
		FootballDataID: int64PtrToNull(p.FootballDataID),
		FantasyID:      int64PtrToNull(p.FantasyID),
		ScrapeID:       int64PtrToNull(p.ScrapeID),
	}

	query, args, err := qb.InsertModel("players", insertModel, "RETURNING id")
	if err != nil {
		return player.Player{}, fmt.Errorf("build insert player query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return player.Player{}, fmt.Errorf("insert player: %w", err)
	}

	p.ID = id
	return p, nil
}

func (r *PlayerRepository) SetFantasyID(ctx context.Context, playerID, fantasyID int64) error {
	return r.setExternalID(ctx, "fantasy_id", playerID, fantasyID)
}

func (r *PlayerRepository) SetScrapeID(ctx context.Context, playerID, scrapeID int64) error {
	return r.setExternalID(ctx, "scrape_id", playerID, scrapeID)
}

func (r *PlayerRepository) setExternalID(ctx context.Context, column string, playerID, externalID int64) error {
	query, args, err := qb.Update("players").
		Set(column, externalID).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player %s query: %w", column, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update player %s: %w", column, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update player %s rows affected: %w", column, err)
	}
	if affected == 0 {
		return fmt.Errorf("update player %s: player id=%d not found", column, playerID)
	}

	return nil
}
