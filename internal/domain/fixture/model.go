package fixture

import "time"

// Fixture is one scheduled match between two teams.
type Fixture struct {
	ID             int64
	Season         int
	GameweekID     int64
	HomeTeamID     int64
	AwayTeamID     int64
	FootballDataID *int64
	KickoffAt      time.Time
}

// GameweekLink associates a fantasy-calendar round number with a
// gameweek row for one season.
type GameweekLink struct {
	GameweekID int64
	Season     int
	Round      int
}
