package postgres

import (
	"database/sql"
	"time"

	"github.com/openfooty/statsync/internal/domain/fixture"
)

type fixtureTableModel struct {
	ID             int64         `db:"id"`
	Season         int           `db:"season"`
	GameweekID     int64         `db:"gameweek_id"`
	HomeTeamID     int64         `db:"home_team_id"`
	AwayTeamID     int64         `db:"away_team_id"`
	FootballDataID sql.NullInt64 `db:"football_data_id"`
	KickoffAt      time.Time     `db:"kickoff_at"`
}

func (m fixtureTableModel) toDomain() fixture.Fixture {
	return fixture.Fixture{
		ID:             m.ID,
		Season:         m.Season,
		GameweekID:     m.GameweekID,
		HomeTeamID:     m.HomeTeamID,
		AwayTeamID:     m.AwayTeamID,
		FootballDataID: nullToInt64Ptr(m.FootballDataID),
		KickoffAt:      m.KickoffAt,
	}
}
