package usecase

import (
	"context"
	"fmt"

	"github.com/openfooty/statsync/internal/domain/fixture"
	"github.com/openfooty/statsync/internal/domain/participation"
	"github.com/openfooty/statsync/internal/domain/player"
	"github.com/openfooty/statsync/internal/platform/logging"
)

const fullMatchMinutes = 90

// PlayerFetcher is the slice of the football-data gateway the
// ingestor needs: full player info for identities it has not seen.
type PlayerFetcher interface {
	FetchPlayer(ctx context.Context, externalID int64) (PlayerInfo, error)
}

// Booking holds the card flags for one player in one fixture. Yellow
// and red are independent because a player can collect both.
type Booking struct {
	Yellow bool
	Red    bool
}

// TeamLineup is one team block of a fixture payload. Substitution
// maps are keyed by the source's player ID and carry the match minute
// of the event.
type TeamLineup struct {
	TeamID           int64
	Starters         []int64
	Substitutes      []int64
	SubstitutionsOff map[int64]int
	SubstitutionsOn  map[int64]int
	Bookings         map[int64]Booking
}

// FixturePayload is one fixture's raw participation payload as the
// football-data gateway delivers it.
type FixturePayload struct {
	FixtureID int64
	Round     int
	Home      TeamLineup
	Away      TeamLineup
}

// AdvancedMetricsInput carries the secondary source's per-fixture
// metric block. Every field is a pointer so the merge can tell a
// missing value from a zero.
type AdvancedMetricsInput struct {
	Goals     *int
	Assists   *int
	Shots     *int
	KeyPasses *int
	XG        *float64
	XA        *float64
	NPG       *int
	NPXG      *float64
	XGChain   *float64
	XGBuildup *float64
	Position  *string
}

// ParticipationService converts fixture payloads into
// fixture-participation rows, resolving source-local player
// references to canonical IDs on the way. Ingestion is idempotent:
// attendance facts are only ever written by the first run that sees a
// (player, fixture, team) triple.
type ParticipationService struct {
	playerRepo        player.Repository
	participationRepo participation.Repository
	fixtureRepo       fixture.Repository
	resolver          *ResolverService
	players           PlayerFetcher
	logger            *logging.Logger
}

func NewParticipationService(
	playerRepo player.Repository,
	participationRepo participation.Repository,
	fixtureRepo fixture.Repository,
	resolver *ResolverService,
	players PlayerFetcher,
	logger *logging.Logger,
) *ParticipationService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ParticipationService{
		playerRepo:        playerRepo,
		participationRepo: participationRepo,
		fixtureRepo:       fixtureRepo,
		resolver:          resolver,
		players:           players,
		logger:            logger,
	}
}

// IngestFixture ingests both team blocks of one fixture payload.
// Home players are processed before away players and starters before
// substitutes, which keeps re-runs byte-for-byte deterministic.
func (s *ParticipationService) IngestFixture(ctx context.Context, season int, payload FixturePayload) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ParticipationService.IngestFixture")
	defer span.End()

	if payload.FixtureID <= 0 {
		return fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	gameweekID, found, err := s.fixtureRepo.GetGameweekID(ctx, season, payload.Round)
	if err != nil {
		return fmt.Errorf("get gameweek id season=%d round=%d: %w", season, payload.Round, err)
	}
	if !found {
		return fmt.Errorf("%w: no gameweek link for season=%d round=%d", ErrNotFound, season, payload.Round)
	}

	for _, block := range []TeamLineup{payload.Home, payload.Away} {
		if err := s.ingestTeamBlock(ctx, payload.FixtureID, gameweekID, block); err != nil {
			return err
		}
	}

	return nil
}

func (s *ParticipationService) ingestTeamBlock(ctx context.Context, fixtureID, gameweekID int64, block TeamLineup) error {
	if block.TeamID <= 0 {
		return fmt.Errorf("%w: team id is required on fixture %d", ErrInvalidInput, fixtureID)
	}

	for _, externalID := range block.Starters {
		minutes := fullMatchMinutes
		if offMinute, ok := block.SubstitutionsOff[externalID]; ok {
			minutes = offMinute
		}
		if err := s.ingestOne(ctx, fixtureID, gameweekID, block, externalID, minutes); err != nil {
			return err
		}
	}

	for _, externalID := range block.Substitutes {
		minutes := 0
		if onMinute, ok := block.SubstitutionsOn[externalID]; ok {
			minutes = fullMatchMinutes - onMinute
		}
		if err := s.ingestOne(ctx, fixtureID, gameweekID, block, externalID, minutes); err != nil {
			return err
		}
	}

	return nil
}

func (s *ParticipationService) ingestOne(ctx context.Context, fixtureID, gameweekID int64, block TeamLineup, externalID int64, minutes int) error {
	canonical, err := s.resolvePlayer(ctx, externalID)
	if err != nil {
		return err
	}

	_, found, err := s.participationRepo.Get(ctx, canonical.ID, fixtureID, block.TeamID)
	if err != nil {
		return fmt.Errorf("get participation player=%d fixture=%d team=%d: %w", canonical.ID, fixtureID, block.TeamID, err)
	}
	if found {
		// Attendance facts are established by the first ingestion only.
		return nil
	}

	booking := block.Bookings[externalID]
	row := participation.Participation{
		PlayerID:   canonical.ID,
		FixtureID:  fixtureID,
		TeamID:     block.TeamID,
		GameweekID: gameweekID,
		Minutes:    minutes,
		YellowCard: booking.Yellow,
		RedCard:    booking.Red,
	}
	if err := row.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.participationRepo.Insert(ctx, row); err != nil {
		return fmt.Errorf("insert participation player=%d fixture=%d team=%d: %w", canonical.ID, fixtureID, block.TeamID, err)
	}

	return nil
}

// resolvePlayer translates an authoritative external ID to the
// canonical player, fetching the full record and creating the
// identity when it has never been seen. This is the one ingest path
// allowed to create identities.
func (s *ParticipationService) resolvePlayer(ctx context.Context, externalID int64) (player.Player, error) {
	existing, found, err := s.playerRepo.GetByFootballDataID(ctx, externalID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by football-data id %d: %w", externalID, err)
	}
	if found {
		return existing, nil
	}

	info, err := s.players.FetchPlayer(ctx, externalID)
	if err != nil {
		return player.Player{}, fmt.Errorf("fetch player %d from football-data: %w", externalID, err)
	}

	return s.resolver.ResolveOrCreate(ctx, externalID, info)
}

// MergeAdvancedMetrics fills the advanced block of an existing
// participation row. The block is write-once: a row whose goals value
// is already set is left untouched and the merge reports zero effect.
func (s *ParticipationService) MergeAdvancedMetrics(ctx context.Context, playerID, fixtureID, teamID int64, in AdvancedMetricsInput) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ParticipationService.MergeAdvancedMetrics")
	defer span.End()

	existing, found, err := s.participationRepo.Get(ctx, playerID, fixtureID, teamID)
	if err != nil {
		return false, fmt.Errorf("get participation player=%d fixture=%d team=%d: %w", playerID, fixtureID, teamID, err)
	}
	if !found {
		return false, fmt.Errorf("%w: participation player=%d fixture=%d team=%d", ErrNotFound, playerID, fixtureID, teamID)
	}
	if existing.Advanced != nil {
		return false, nil
	}

	metrics, err := validateAdvancedMetrics(in)
	if err != nil {
		return false, err
	}

	if err := s.participationRepo.SetAdvancedMetrics(ctx, playerID, fixtureID, teamID, metrics); err != nil {
		return false, fmt.Errorf("set advanced metrics player=%d fixture=%d team=%d: %w", playerID, fixtureID, teamID, err)
	}

	return true, nil
}

func validateAdvancedMetrics(in AdvancedMetricsInput) (participation.AdvancedMetrics, error) {
	missing := func(field string) (participation.AdvancedMetrics, error) {
		return participation.AdvancedMetrics{}, fmt.Errorf("%w: advanced metric %s", ErrMissingRequiredField, field)
	}

	switch {
	case in.Goals == nil:
		return missing("goals")
	case in.Assists == nil:
		return missing("assists")
	case in.Shots == nil:
		return missing("shots")
	case in.KeyPasses == nil:
		return missing("key_passes")
	case in.XG == nil:
		return missing("xg")
	case in.XA == nil:
		return missing("xa")
	case in.NPG == nil:
		return missing("npg")
	case in.NPXG == nil:
		return missing("npxg")
	case in.XGChain == nil:
		return missing("xg_chain")
	case in.XGBuildup == nil:
		return missing("xg_buildup")
	case in.Position == nil:
		return missing("position")
	}

	return participation.AdvancedMetrics{
		Goals:     *in.Goals,
		Assists:   *in.Assists,
		Shots:     *in.Shots,
		KeyPasses: *in.KeyPasses,
		XG:        *in.XG,
		XA:        *in.XA,
		NPG:       *in.NPG,
		NPXG:      *in.NPXG,
		XGChain:   *in.XGChain,
		XGBuildup: *in.XGBuildup,
		Position:  *in.Position,
	}, nil
}
