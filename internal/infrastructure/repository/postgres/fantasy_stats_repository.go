package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openfooty/statsync/internal/domain/fantasystats"
	qb "github.com/openfooty/statsync/internal/platform/querybuilder"
)

type FantasyStatsRepository struct {
	db *sqlx.DB
}

func NewFantasyStatsRepository(db *sqlx.DB) *FantasyStatsRepository {
	return &FantasyStatsRepository{db: db}
}

type fantasyStatInsertModel struct {
	PlayerID     int64   `db:"player_id"`
	Season       int     `db:"season"`
	Round        int     `db:"round"`
	Bonus        int     `db:"bonus"`
	BPS          int     `db:"bps"`
	TotalPoints  int     `db:"total_points"`
	TransfersIn  int     `db:"transfers_in"`
	TransfersOut int     `db:"transfers_out"`
	Selected     int64   `db:"selected"`
	Value        float64 `db:"value"`
}

// Upsert keeps the row for a (player, season, round) current with the
// latest fetched history. Fantasy history is re-pulled whole, so the
// last write wins.
func (r *FantasyStatsRepository) Upsert(ctx context.Context, stat fantasystats.GameweekStat) error {
	insertModel := fantasyStatInsertModel{
		PlayerID:     stat.PlayerID,
		Season:       stat.Season,
		Round:        stat.Round,
		Bonus:        stat.Bonus,
		BPS:          stat.BPS,
		TotalPoints:  stat.TotalPoints,
		TransfersIn:  stat.TransfersIn,
		TransfersOut: stat.TransfersOut,
		Selected:     stat.Selected,
		Value:        stat.Value,
	}

	query, args, err := qb.InsertModel("fantasy_gameweek_stats", insertModel, `ON CONFLICT (player_id, season, round)
DO UPDATE SET
    bonus = EXCLUDED.bonus,
    bps = EXCLUDED.bps,
    total_points = EXCLUDED.total_points,
    transfers_in = EXCLUDED.transfers_in,
    transfers_out = EXCLUDED.transfers_out,
    selected = EXCLUDED.selected,
    value = EXCLUDED.value,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert fantasy stat query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert fantasy stat player=%d season=%d round=%d: %w", stat.PlayerID, stat.Season, stat.Round, err)
	}

	return nil
}
