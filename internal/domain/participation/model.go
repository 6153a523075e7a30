package participation

import "fmt"

// Participation is one player's involvement in one fixture for one
// team. The team is part of the key because a player can appear for
// either side across career history.
type Participation struct {
	PlayerID   int64
	FixtureID  int64
	TeamID     int64
	GameweekID int64
	Minutes    int
	YellowCard bool
	RedCard    bool
	// Advanced is nil until the scrape-target ingest path fills it in.
	// Once set it is never overwritten.
	Advanced *AdvancedMetrics
}

// AdvancedMetrics is the per-fixture block supplied by the secondary
// source after the attendance facts already exist.
type AdvancedMetrics struct {
	Goals     int
	Assists   int
	Shots     int
	KeyPasses int
	XG        float64
	XA        float64
	NPG       int
	NPXG      float64
	XGChain   float64
	XGBuildup float64
	Position  string
}

func (p Participation) Validate() error {
	if p.PlayerID <= 0 {
		return fmt.Errorf("participation player id is required")
	}
	if p.FixtureID <= 0 {
		return fmt.Errorf("participation fixture id is required")
	}
	if p.TeamID <= 0 {
		return fmt.Errorf("participation team id is required")
	}
	if p.Minutes < 0 || p.Minutes > 120 {
		return fmt.Errorf("participation minutes out of range: %d", p.Minutes)
	}

	return nil
}
