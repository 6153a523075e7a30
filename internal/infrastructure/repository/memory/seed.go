package memory

import (
	"github.com/openfooty/statsync/internal/domain/country"
	"github.com/openfooty/statsync/internal/domain/team"
)

// Shared reference IDs for tests.
const (
	CountryIDEngland    int64 = 1
	CountryIDArgentina  int64 = 2
	CountryIDSouthKorea int64 = 3
	CountryIDBrazil     int64 = 4

	CompetitionIDPremierLeague int64 = 100
)

func SeedCountries() []country.Country {
	return []country.Country{
		{ID: CountryIDEngland, Name: "England"},
		{ID: CountryIDArgentina, Name: "Argentina"},
		{ID: CountryIDSouthKorea, Name: "South Korea"},
		{ID: CountryIDBrazil, Name: "Brazil"},
	}
}

// SeedCountryAltNames maps the spellings upstream sources actually
// send to the canonical country rows.
func SeedCountryAltNames() map[string]int64 {
	return map[string]int64{
		"Korea Republic":  CountryIDSouthKorea,
		"Korea, South":    CountryIDSouthKorea,
		"Brasil":          CountryIDBrazil,
		"United Kingdom":  CountryIDEngland,
		"Argentina (ARG)": CountryIDArgentina,
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: 1, Name: "Tottenham Hotspur"},
		{ID: 2, Name: "Arsenal"},
		{ID: 3, Name: "Everton"},
		{ID: 4, Name: "Newcastle United"},
	}
}
