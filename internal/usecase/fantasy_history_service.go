package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/openfooty/statsync/internal/domain/fantasystats"
	"github.com/openfooty/statsync/internal/domain/player"
	"github.com/openfooty/statsync/internal/platform/logging"
)

// FantasyElement is one per-season player record from the
// fantasy-league bootstrap payload.
type FantasyElement struct {
	ID         int64
	FirstName  string
	SecondName string
	WebName    string
}

// FantasyGameweekEntry is one round of a player's fantasy history.
// TeamHomeScore is nil while the gameweek is still in progress.
type FantasyGameweekEntry struct {
	Round         int
	TeamHomeScore *int
	Bonus         int
	BPS           int
	TotalPoints   int
	TransfersIn   int
	TransfersOut  int
	Selected      int64
	Value         int
}

// FantasyGateway is the fantasy-league source contract.
type FantasyGateway interface {
	FetchBootstrap(ctx context.Context) ([]FantasyElement, error)
	FetchElementHistory(ctx context.Context, elementID int64) ([]FantasyGameweekEntry, error)
}

// FantasyHistoryService attaches fantasy-league IDs to canonical
// players and ingests their per-gameweek history.
type FantasyHistoryService struct {
	playerRepo player.Repository
	statsRepo  fantasystats.Repository
	resolver   *ResolverService
	gateway    FantasyGateway
	logger     *logging.Logger
}

func NewFantasyHistoryService(
	playerRepo player.Repository,
	statsRepo fantasystats.Repository,
	resolver *ResolverService,
	gateway FantasyGateway,
	logger *logging.Logger,
) *FantasyHistoryService {
	if logger == nil {
		logger = logging.Default()
	}

	return &FantasyHistoryService{
		playerRepo: playerRepo,
		statsRepo:  statsRepo,
		resolver:   resolver,
		gateway:    gateway,
		logger:     logger,
	}
}

// SyncResult summarizes one batch run. Unresolved records are
// reported, not swallowed: the per-record failures land in Failures.
type SyncResult struct {
	Mapped   int
	Ingested int
	Skipped  int
	Failures []string
}

// SyncPlayerIDs walks the bootstrap payload and attaches the fantasy
// ID to every canonical player the cascade resolves. Resolution
// failures are collected per record so one bad name does not halt the
// batch; storage errors abort the run.
func (s *FantasyHistoryService) SyncPlayerIDs(ctx context.Context, competitionID int64) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FantasyHistoryService.SyncPlayerIDs")
	defer span.End()

	elements, err := s.gateway.FetchBootstrap(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("fetch fantasy bootstrap: %w", err)
	}

	var result SyncResult
	for _, element := range elements {
		_, found, err := s.playerRepo.GetByFantasyID(ctx, element.ID)
		if err != nil {
			return result, fmt.Errorf("get player by fantasy id %d: %w", element.ID, err)
		}
		if found {
			result.Skipped++
			continue
		}

		matched, err := s.resolver.ResolveByFantasyInfo(ctx, competitionID, FantasyPlayerInfo{
			FirstName:  element.FirstName,
			SecondName: element.SecondName,
			WebName:    element.WebName,
		})
		if err != nil {
			if errors.Is(err, ErrNoMatchFound) || errors.Is(err, ErrAmbiguousMatch) {
				result.Failures = append(result.Failures, fmt.Sprintf("element %d (%s): %v", element.ID, element.WebName, err))
				continue
			}
			return result, err
		}

		if err := s.playerRepo.SetFantasyID(ctx, matched.ID, element.ID); err != nil {
			return result, fmt.Errorf("set fantasy id %d on player %d: %w", element.ID, matched.ID, err)
		}
		result.Mapped++
	}

	return result, nil
}

// IngestHistory ingests one player's gameweek history for a season.
// Entries for in-progress gameweeks (null home score) contribute
// nothing; the source's tenths-scaled value is divided by ten before
// storage.
func (s *FantasyHistoryService) IngestHistory(ctx context.Context, season int, playerID, fantasyID int64) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FantasyHistoryService.IngestHistory")
	defer span.End()

	entries, err := s.gateway.FetchElementHistory(ctx, fantasyID)
	if err != nil {
		return 0, fmt.Errorf("fetch fantasy history element=%d: %w", fantasyID, err)
	}

	ingested := 0
	for _, entry := range entries {
		if entry.TeamHomeScore == nil {
			continue
		}

		stat := fantasystats.GameweekStat{
			PlayerID:     playerID,
			Season:       season,
			Round:        entry.Round,
			Bonus:        entry.Bonus,
			BPS:          entry.BPS,
			TotalPoints:  entry.TotalPoints,
			TransfersIn:  entry.TransfersIn,
			TransfersOut: entry.TransfersOut,
			Selected:     entry.Selected,
			Value:        float64(entry.Value) / 10,
		}
		if err := s.statsRepo.Upsert(ctx, stat); err != nil {
			return ingested, fmt.Errorf("upsert fantasy gameweek stat player=%d round=%d: %w", playerID, entry.Round, err)
		}
		ingested++
	}

	return ingested, nil
}

// IngestAllHistories fetches the histories of every fantasy-mapped
// player with bounded concurrency and applies them sequentially.
// Only the fetch fans out; writes stay single-threaded. Players the
// cascade has not mapped yet carry no fantasy ID and are counted as
// skipped, not failed.
func (s *FantasyHistoryService) IngestAllHistories(ctx context.Context, season int, players []player.Player, maxFetchers int) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FantasyHistoryService.IngestAllHistories")
	defer span.End()

	if maxFetchers <= 0 {
		maxFetchers = 4
	}

	var result SyncResult
	mapped := make([]player.Player, 0, len(players))
	for _, p := range players {
		if p.FantasyID == nil {
			result.Skipped++
			continue
		}
		mapped = append(mapped, p)
	}

	type fetched struct {
		player  player.Player
		entries []FantasyGameweekEntry
		err     error
	}

	fetchPool := pool.NewWithResults[fetched]().WithMaxGoroutines(maxFetchers)
	for _, p := range mapped {
		p := p
		fetchPool.Go(func() fetched {
			entries, err := s.gateway.FetchElementHistory(ctx, *p.FantasyID)
			return fetched{player: p, entries: entries, err: err}
		})
	}
	for _, item := range fetchPool.Wait() {
		if item.err != nil {
			result.Failures = append(result.Failures, fmt.Sprintf("player %d: %v", item.player.ID, item.err))
			continue
		}

		for _, entry := range item.entries {
			if entry.TeamHomeScore == nil {
				result.Skipped++
				continue
			}
			stat := fantasystats.GameweekStat{
				PlayerID:     item.player.ID,
				Season:       season,
				Round:        entry.Round,
				Bonus:        entry.Bonus,
				BPS:          entry.BPS,
				TotalPoints:  entry.TotalPoints,
				TransfersIn:  entry.TransfersIn,
				TransfersOut: entry.TransfersOut,
				Selected:     entry.Selected,
				Value:        float64(entry.Value) / 10,
			}
			if err := s.statsRepo.Upsert(ctx, stat); err != nil {
				return result, fmt.Errorf("upsert fantasy gameweek stat player=%d round=%d: %w", item.player.ID, entry.Round, err)
			}
			result.Ingested++
		}
	}

	return result, nil
}
