package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/openfooty/statsync/internal/domain/fixture"
	"github.com/openfooty/statsync/internal/domain/player"
	"github.com/openfooty/statsync/internal/infrastructure/repository/memory"
	"github.com/openfooty/statsync/internal/platform/logging"
)

type stubPlayerFetcher struct {
	players map[int64]PlayerInfo
	calls   int
}

func (s *stubPlayerFetcher) FetchPlayer(_ context.Context, externalID int64) (PlayerInfo, error) {
	s.calls++
	info, ok := s.players[externalID]
	if !ok {
		return PlayerInfo{}, fmt.Errorf("%w: football-data has no player %d", ErrUpstream, externalID)
	}
	return info, nil
}

type participationFixture struct {
	svc               *ParticipationService
	playerRepo        *memory.PlayerRepository
	participationRepo *memory.ParticipationRepository
	fetcher           *stubPlayerFetcher
}

func newParticipationFixture(players []player.Player) participationFixture {
	playerRepo := memory.NewPlayerRepository(players)
	countryRepo := memory.NewCountryRepository(memory.SeedCountries(), memory.SeedCountryAltNames())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	participationRepo := memory.NewParticipationRepository()
	fixtureRepo := memory.NewFixtureRepository(nil, []fixture.GameweekLink{
		{GameweekID: 5001, Season: 2025, Round: 12},
	})
	fetcher := &stubPlayerFetcher{players: map[int64]PlayerInfo{}}

	resolver := NewResolverService(playerRepo, countryRepo, teamRepo, nil, logging.NewNop())
	svc := NewParticipationService(playerRepo, participationRepo, fixtureRepo, resolver, fetcher, logging.NewNop())

	return participationFixture{
		svc:               svc,
		playerRepo:        playerRepo,
		participationRepo: participationRepo,
		fetcher:           fetcher,
	}
}

func testPayload() FixturePayload {
	return FixturePayload{
		FixtureID: 8001,
		Round:     12,
		Home: TeamLineup{
			TeamID:      1,
			Starters:    []int64{101, 102},
			Substitutes: []int64{103},
			SubstitutionsOff: map[int64]int{
				102: 63,
			},
			SubstitutionsOn: map[int64]int{
				103: 70,
			},
			Bookings: map[int64]Booking{
				102: {Yellow: true, Red: true},
			},
		},
		Away: TeamLineup{
			TeamID:      2,
			Starters:    []int64{201},
			Substitutes: []int64{202},
			Bookings: map[int64]Booking{
				201: {Yellow: true},
			},
		},
	}
}

func seededLineupPlayers() []player.Player {
	return []player.Player{
		{ID: 1, FirstName: "Cristian", LastName: "Romero", CountryID: memory.CountryIDArgentina, FootballDataID: int64Ptr(101)},
		{ID: 2, FirstName: "Heung-Min", LastName: "Son", CountryID: memory.CountryIDSouthKorea, FootballDataID: int64Ptr(102)},
		{ID: 3, FirstName: "Brennan", LastName: "Johnson", CountryID: memory.CountryIDEngland, FootballDataID: int64Ptr(103)},
		{ID: 4, FirstName: "Bukayo", LastName: "Saka", CountryID: memory.CountryIDEngland, FootballDataID: int64Ptr(201)},
		{ID: 5, FirstName: "Eddie", LastName: "Nketiah", CountryID: memory.CountryIDEngland, FootballDataID: int64Ptr(202)},
	}
}

func TestIngestFixture_MinutesAndCards(t *testing.T) {
	t.Parallel()

	f := newParticipationFixture(seededLineupPlayers())
	if err := f.svc.IngestFixture(t.Context(), 2025, testPayload()); err != nil {
		t.Fatalf("ingest fixture: %v", err)
	}

	fullStarter, found, _ := f.participationRepo.Get(t.Context(), 1, 8001, 1)
	if !found || fullStarter.Minutes != 90 {
		t.Fatalf("starter never substituted: found=%v minutes=%d", found, fullStarter.Minutes)
	}

	subbedOff, _, _ := f.participationRepo.Get(t.Context(), 2, 8001, 1)
	if subbedOff.Minutes != 63 {
		t.Fatalf("starter substituted off at 63 should have 63 minutes, got %d", subbedOff.Minutes)
	}
	if !subbedOff.YellowCard || !subbedOff.RedCard {
		t.Fatalf("expected independent yellow and red flags, got %+v", subbedOff)
	}

	subbedOn, _, _ := f.participationRepo.Get(t.Context(), 3, 8001, 1)
	if subbedOn.Minutes != 20 {
		t.Fatalf("substitute on at 70 should have 20 minutes, got %d", subbedOn.Minutes)
	}

	unusedSub, _, _ := f.participationRepo.Get(t.Context(), 5, 8001, 2)
	if unusedSub.Minutes != 0 {
		t.Fatalf("unused substitute should have 0 minutes, got %d", unusedSub.Minutes)
	}

	awayStarter, _, _ := f.participationRepo.Get(t.Context(), 4, 8001, 2)
	if !awayStarter.YellowCard || awayStarter.RedCard {
		t.Fatalf("expected yellow only for away starter, got %+v", awayStarter)
	}
	if awayStarter.GameweekID != 5001 {
		t.Fatalf("expected gameweek link resolved to 5001, got %d", awayStarter.GameweekID)
	}
}

func TestIngestFixture_IdempotentForAttendance(t *testing.T) {
	t.Parallel()

	f := newParticipationFixture(seededLineupPlayers())
	if err := f.svc.IngestFixture(t.Context(), 2025, testPayload()); err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	firstInserts := f.participationRepo.InsertCount()

	// A re-run with different substitution data must not rewrite
	// attendance facts.
	rerun := testPayload()
	rerun.Home.SubstitutionsOff[102] = 45
	if err := f.svc.IngestFixture(t.Context(), 2025, rerun); err != nil {
		t.Fatalf("second ingest: %v", err)
	}

	if f.participationRepo.InsertCount() != firstInserts {
		t.Fatalf("expected no new inserts on re-run, got %d then %d", firstInserts, f.participationRepo.InsertCount())
	}
	row, _, _ := f.participationRepo.Get(t.Context(), 2, 8001, 1)
	if row.Minutes != 63 {
		t.Fatalf("attendance facts overwritten on re-run: minutes=%d", row.Minutes)
	}
}

func TestIngestFixture_CreatesUnknownPlayerFromAuthoritativeSource(t *testing.T) {
	t.Parallel()

	players := seededLineupPlayers()[:4] // drop Nketiah (external 202)
	f := newParticipationFixture(players)
	f.fetcher.players[202] = PlayerInfo{FirstName: "Eddie", LastName: "Nketiah", CountryName: "England"}

	if err := f.svc.IngestFixture(t.Context(), 2025, testPayload()); err != nil {
		t.Fatalf("ingest fixture: %v", err)
	}
	if f.fetcher.calls != 1 {
		t.Fatalf("expected one player fetch for the unknown id, got %d", f.fetcher.calls)
	}

	created, found, _ := f.playerRepo.GetByFootballDataID(t.Context(), 202)
	if !found {
		t.Fatalf("expected canonical player created for external id 202")
	}
	row, found, _ := f.participationRepo.Get(t.Context(), created.ID, 8001, 2)
	if !found || row.Minutes != 0 {
		t.Fatalf("expected participation row for created player, found=%v row=%+v", found, row)
	}
}

func TestIngestFixture_MissingGameweekLinkFails(t *testing.T) {
	t.Parallel()

	f := newParticipationFixture(seededLineupPlayers())
	payload := testPayload()
	payload.Round = 99

	err := f.svc.IngestFixture(t.Context(), 2025, payload)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unlinked round, got %v", err)
	}
}

func advancedInput() AdvancedMetricsInput {
	goals, assists, shots, keyPasses, npg := 1, 0, 3, 2, 1
	xg, xa, npxg, chain, buildup := 0.61, 0.12, 0.61, 0.73, 0.11
	position := "FW"
	return AdvancedMetricsInput{
		Goals: &goals, Assists: &assists, Shots: &shots, KeyPasses: &keyPasses,
		XG: &xg, XA: &xa, NPG: &npg, NPXG: &npxg, XGChain: &chain, XGBuildup: &buildup,
		Position: &position,
	}
}

func TestMergeAdvancedMetrics_WriteOnce(t *testing.T) {
	t.Parallel()

	f := newParticipationFixture(seededLineupPlayers())
	if err := f.svc.IngestFixture(t.Context(), 2025, testPayload()); err != nil {
		t.Fatalf("ingest fixture: %v", err)
	}

	applied, err := f.svc.MergeAdvancedMetrics(t.Context(), 2, 8001, 1, advancedInput())
	if err != nil {
		t.Fatalf("first merge: %v", err)
	}
	if !applied {
		t.Fatalf("expected first merge to apply")
	}

	second := advancedInput()
	*second.Goals = 4
	applied, err = f.svc.MergeAdvancedMetrics(t.Context(), 2, 8001, 1, second)
	if err != nil {
		t.Fatalf("second merge: %v", err)
	}
	if applied {
		t.Fatalf("expected second merge to be a no-op")
	}

	row, _, _ := f.participationRepo.Get(t.Context(), 2, 8001, 1)
	if row.Advanced == nil || row.Advanced.Goals != 1 {
		t.Fatalf("original metrics not preserved: %+v", row.Advanced)
	}
}

func TestMergeAdvancedMetrics_MissingFieldNamed(t *testing.T) {
	t.Parallel()

	f := newParticipationFixture(seededLineupPlayers())
	if err := f.svc.IngestFixture(t.Context(), 2025, testPayload()); err != nil {
		t.Fatalf("ingest fixture: %v", err)
	}

	in := advancedInput()
	in.XA = nil
	_, err := f.svc.MergeAdvancedMetrics(t.Context(), 2, 8001, 1, in)
	if !errors.Is(err, ErrMissingRequiredField) {
		t.Fatalf("expected ErrMissingRequiredField, got %v", err)
	}
	if got := err.Error(); !strings.Contains(got, "xa") {
		t.Fatalf("expected error to name the absent field, got %q", got)
	}
}

func TestMergeAdvancedMetrics_MissingRowFails(t *testing.T) {
	t.Parallel()

	f := newParticipationFixture(seededLineupPlayers())
	_, err := f.svc.MergeAdvancedMetrics(t.Context(), 1, 8001, 1, advancedInput())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

