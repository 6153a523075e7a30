package footballdata

type personEnvelope struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Nationality string `json:"nationality"`
}

type matchEnvelope struct {
	ID       int64          `json:"id"`
	Matchday int            `json:"matchday"`
	HomeTeam matchTeamBlock `json:"homeTeam"`
	AwayTeam matchTeamBlock `json:"awayTeam"`
}

type matchTeamBlock struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Lineup        []matchPlayer   `json:"lineup"`
	Bench         []matchPlayer   `json:"bench"`
	Substitutions []substitution  `json:"substitutions"`
	Bookings      []bookingRecord `json:"bookings"`
}

type matchPlayer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type substitution struct {
	Minute    int         `json:"minute"`
	PlayerOut matchPlayer `json:"playerOut"`
	PlayerIn  matchPlayer `json:"playerIn"`
}

type bookingRecord struct {
	Minute int         `json:"minute"`
	Player matchPlayer `json:"player"`
	Card   string      `json:"card"`
}
