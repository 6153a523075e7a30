package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openfooty/statsync/internal/domain/participation"
	qb "github.com/openfooty/statsync/internal/platform/querybuilder"
)

type ParticipationRepository struct {
	db *sqlx.DB
}

var participationSelectColumns = []string{
	"player_id",
	"fixture_id",
	"team_id",
	"gameweek_id",
	"minutes",
	"yellow_card",
	"red_card",
	"goals",
	"assists",
	"shots",
	"key_passes",
	"xg",
	"xa",
	"npg",
	"npxg",
	"xg_chain",
	"xg_buildup",
	"position",
	"created_at",
	"updated_at",
}

func NewParticipationRepository(db *sqlx.DB) *ParticipationRepository {
	return &ParticipationRepository{db: db}
}

func (r *ParticipationRepository) Get(ctx context.Context, playerID, fixtureID, teamID int64) (participation.Participation, bool, error) {
	query, args, err := qb.Select(participationSelectColumns...).From("fixture_participations").
		Where(
			qb.Eq("player_id", playerID),
			qb.Eq("fixture_id", fixtureID),
			qb.Eq("team_id", teamID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return participation.Participation{}, false, fmt.Errorf("build select participation query: %w", err)
	}

	var row participationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return participation.Participation{}, false, nil
		}
		return participation.Participation{}, false, fmt.Errorf("select participation: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *ParticipationRepository) Insert(ctx context.Context, p participation.Participation) error {
	insertModel := participationInsertModel{
		PlayerID:   p.PlayerID,
		FixtureID:  p.FixtureID,
		TeamID:     p.TeamID,
		GameweekID: p.GameweekID,
		Minutes:    p.Minutes,
		YellowCard: p.YellowCard,
		RedCard:    p.RedCard,
	}

	query, args, err := qb.InsertModel("fixture_participations", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert participation query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert participation player=%d fixture=%d team=%d: %w", p.PlayerID, p.FixtureID, p.TeamID, err)
	}

	return nil
}

func (r *ParticipationRepository) SetAdvancedMetrics(ctx context.Context, playerID, fixtureID, teamID int64, m participation.AdvancedMetrics) error {
	query, args, err := qb.Update("fixture_participations").
		Set("goals", m.Goals).
		Set("assists", m.Assists).
		Set("shots", m.Shots).
		Set("key_passes", m.KeyPasses).
		Set("xg", m.XG).
		Set("xa", m.XA).
		Set("npg", m.NPG).
		Set("npxg", m.NPXG).
		Set("xg_chain", m.XGChain).
		Set("xg_buildup", m.XGBuildup).
		Set("position", m.Position).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("player_id", playerID),
			qb.Eq("fixture_id", fixtureID),
			qb.Eq("team_id", teamID),
			qb.IsNull("goals"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update participation metrics query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update participation metrics: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update participation metrics rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update participation metrics: row player=%d fixture=%d team=%d absent or already written", playerID, fixtureID, teamID)
	}

	return nil
}
