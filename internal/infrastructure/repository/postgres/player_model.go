package postgres

import (
	"database/sql"
	"time"

	"github.com/openfooty/statsync/internal/domain/player"
)

type playerTableModel struct {
	ID             int64         `db:"id"`
	FirstName      string        `db:"first_name"`
	LastName       string        `db:"last_name"`
	CountryID      int64         `db:"country_id"`
	FootballDataID sql.NullInt64 `db:"football_data_id"`
	FantasyID      sql.NullInt64 `db:"fantasy_id"`
	ScrapeID       sql.NullInt64 `db:"scrape_id"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:             m.ID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		CountryID:      m.CountryID,
		FootballDataID: nullToInt64Ptr(m.FootballDataID),
		FantasyID:      nullToInt64Ptr(m.FantasyID),
		ScrapeID:       nullToInt64Ptr(m.ScrapeID),
	}
}

type playerInsertModel struct {
	FirstName      string        `db:"first_name"`
	LastName       string        `db:"last_name"`
	CountryID      int64         `db:"country_id"`
	FootballDataID sql.NullInt64 `db:"football_data_id"`
	FantasyID      sql.NullInt64 `db:"fantasy_id"`
	ScrapeID       sql.NullInt64 `db:"scrape_id"`
}
