package player

import "fmt"

// Player is the canonical identity a person maps to regardless of
// which upstream source a record arrived from. External IDs are
// optional and unique when present; only the football-data ingest
// path may create new rows.
type Player struct {
	ID             int64
	FirstName      string
	LastName       string
	CountryID      int64
	FootballDataID *int64
	FantasyID      *int64
	ScrapeID       *int64
}

func (p Player) Validate() error {
	if p.FirstName == "" && p.LastName == "" {
		return fmt.Errorf("player name is required")
	}
	if p.CountryID <= 0 {
		return fmt.Errorf("player country id is required")
	}

	return nil
}

// FullName joins first and last name with a single space, collapsing
// to the non-empty part when one side is missing.
func (p Player) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
