package fantasyleague

type bootstrapEnvelope struct {
	Elements []bootstrapElement `json:"elements"`
}

type bootstrapElement struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"first_name"`
	SecondName string `json:"second_name"`
	WebName    string `json:"web_name"`
}

type elementSummaryEnvelope struct {
	History []historyRow `json:"history"`
}

type historyRow struct {
	Round         int    `json:"round"`
	TeamHomeScore *int   `json:"team_h_score"`
	Bonus         int    `json:"bonus"`
	BPS           int    `json:"bps"`
	TotalPoints   int    `json:"total_points"`
	TransfersIn   int    `json:"transfers_in"`
	TransfersOut  int    `json:"transfers_out"`
	Selected      int64  `json:"selected"`
	Value         int    `json:"value"`
}
