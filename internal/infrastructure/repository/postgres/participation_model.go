package postgres

import (
	"database/sql"
	"time"

	"github.com/openfooty/statsync/internal/domain/participation"
)

// Advanced metric columns are all nullable and written together in a
// single update. A non-null goals column marks the block as present.
type participationTableModel struct {
	PlayerID   int64           `db:"player_id"`
	FixtureID  int64           `db:"fixture_id"`
	TeamID     int64           `db:"team_id"`
	GameweekID int64           `db:"gameweek_id"`
	Minutes    int             `db:"minutes"`
	YellowCard bool            `db:"yellow_card"`
	RedCard    bool            `db:"red_card"`
	Goals      sql.NullInt64   `db:"goals"`
	Assists    sql.NullInt64   `db:"assists"`
	Shots      sql.NullInt64   `db:"shots"`
	KeyPasses  sql.NullInt64   `db:"key_passes"`
	XG         sql.NullFloat64 `db:"xg"`
	XA         sql.NullFloat64 `db:"xa"`
	NPG        sql.NullInt64   `db:"npg"`
	NPXG       sql.NullFloat64 `db:"npxg"`
	XGChain    sql.NullFloat64 `db:"xg_chain"`
	XGBuildup  sql.NullFloat64 `db:"xg_buildup"`
	Position   sql.NullString  `db:"position"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

func (m participationTableModel) toDomain() participation.Participation {
	out := participation.Participation{
		PlayerID:   m.PlayerID,
		FixtureID:  m.FixtureID,
		TeamID:     m.TeamID,
		GameweekID: m.GameweekID,
		Minutes:    m.Minutes,
		YellowCard: m.YellowCard,
		RedCard:    m.RedCard,
	}

	if m.Goals.Valid {
		out.Advanced = &participation.AdvancedMetrics{
			Goals:     int(m.Goals.Int64),
			Assists:   int(m.Assists.Int64),
			Shots:     int(m.Shots.Int64),
			KeyPasses: int(m.KeyPasses.Int64),
			XG:        m.XG.Float64,
			XA:        m.XA.Float64,
			NPG:       int(m.NPG.Int64),
			NPXG:      m.NPXG.Float64,
			XGChain:   m.XGChain.Float64,
			XGBuildup: m.XGBuildup.Float64,
			Position:  m.Position.String,
		}
	}

	return out
}

type participationInsertModel struct {
	PlayerID   int64 `db:"player_id"`
	FixtureID  int64 `db:"fixture_id"`
	TeamID     int64 `db:"team_id"`
	GameweekID int64 `db:"gameweek_id"`
	Minutes    int   `db:"minutes"`
	YellowCard bool  `db:"yellow_card"`
	RedCard    bool  `db:"red_card"`
}
