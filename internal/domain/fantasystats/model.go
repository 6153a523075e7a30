package fantasystats

// GameweekStat is one player's fantasy-league record for one finished
// gameweek of a season. Value arrives tenths-scaled from the source
// and is stored already divided by ten.
type GameweekStat struct {
	PlayerID     int64
	Season       int
	Round        int
	Bonus        int
	BPS          int
	TotalPoints  int
	TransfersIn  int
	TransfersOut int
	Selected     int64
	Value        float64
}
