package team

import "fmt"

// Team is a real football club.
type Team struct {
	ID             int64
	Name           string
	FootballDataID *int64
}

func (t Team) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
