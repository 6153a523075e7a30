package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openfooty/statsync/internal/domain/country"
	"github.com/openfooty/statsync/internal/domain/player"
	"github.com/openfooty/statsync/internal/domain/team"
	"github.com/openfooty/statsync/internal/platform/cache"
	"github.com/openfooty/statsync/internal/platform/logging"
)

// scrapeSearchCacheTTL bounds how long a scrape search result is
// reused. Batch runs issue the same surname query for many players.
const scrapeSearchCacheTTL = 10 * time.Minute

// PlayerInfo is a player record from the authoritative football-data
// source. FirstName/LastName may be absent, in which case FullName is
// populated and must be split.
type PlayerInfo struct {
	FirstName   string
	LastName    string
	FullName    string
	CountryName string
}

// FantasyPlayerInfo is a per-season player record from the
// fantasy-league source.
type FantasyPlayerInfo struct {
	FirstName  string
	SecondName string
	WebName    string
}

// ScrapeCandidate is one result of a name search against the scrape
// target.
type ScrapeCandidate struct {
	ID   int64
	Team string
}

// ScrapeSearcher is the scrape-target gateway contract the resolver
// consumes.
type ScrapeSearcher interface {
	Search(ctx context.Context, name string) ([]ScrapeCandidate, error)
}

// ResolverService maps external player records onto canonical player
// identities. Only ResolveOrCreate, fed by the authoritative source,
// may create a new identity; the other two paths attach external IDs
// to identities that already exist.
type ResolverService struct {
	playerRepo  player.Repository
	countryRepo country.Repository
	teamRepo    team.Repository
	scraper     ScrapeSearcher
	searchCache *cache.Store
	logger      *logging.Logger
}

func NewResolverService(
	playerRepo player.Repository,
	countryRepo country.Repository,
	teamRepo team.Repository,
	scraper ScrapeSearcher,
	logger *logging.Logger,
) *ResolverService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ResolverService{
		playerRepo:  playerRepo,
		countryRepo: countryRepo,
		teamRepo:    teamRepo,
		scraper:     scraper,
		searchCache: cache.NewStore(scrapeSearchCacheTTL),
		logger:      logger,
	}
}

// ResolveOrCreate returns the canonical player carrying the given
// authoritative external ID, inserting a new identity when none
// exists. Name fields on an existing row are never overwritten, even
// when the incoming record disagrees.
func (s *ResolverService) ResolveOrCreate(ctx context.Context, externalID int64, info PlayerInfo) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolverService.ResolveOrCreate")
	defer span.End()

	if externalID <= 0 {
		return player.Player{}, fmt.Errorf("%w: football-data id must be greater than zero", ErrInvalidInput)
	}

	existing, found, err := s.playerRepo.GetByFootballDataID(ctx, externalID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by football-data id %d: %w", externalID, err)
	}
	if found {
		return existing, nil
	}

	first, last := SanitizeSourceName(info.FirstName, info.LastName, info.FullName)
	if first == "" || last == "" {
		return player.Player{}, fmt.Errorf("%w: first_name and last_name are required to create player football_data_id=%d", ErrMissingRequiredField, externalID)
	}
	if strings.TrimSpace(info.CountryName) == "" {
		return player.Player{}, fmt.Errorf("%w: country_name is required to create player football_data_id=%d", ErrMissingRequiredField, externalID)
	}

	countryID, err := s.resolveCountryID(ctx, info.CountryName)
	if err != nil {
		return player.Player{}, err
	}

	created, err := s.playerRepo.Insert(ctx, player.Player{
		FirstName:      first,
		LastName:       last,
		CountryID:      countryID,
		FootballDataID: &externalID,
	})
	if err != nil {
		return player.Player{}, fmt.Errorf("insert player football_data_id=%d: %w", externalID, err)
	}

	s.logger.InfoContext(ctx, "created canonical player",
		"player_id", created.ID,
		"football_data_id", externalID,
		"name", created.FullName(),
	)
	return created, nil
}

func (s *ResolverService) resolveCountryID(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)

	direct, found, err := s.countryRepo.GetByName(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("get country by name %q: %w", name, err)
	}
	if found {
		return direct.ID, nil
	}

	alt, found, err := s.countryRepo.GetByAltName(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("get country by alt name %q: %w", name, err)
	}
	if found {
		return alt.ID, nil
	}

	return 0, fmt.Errorf("%w: %q has no direct or alternate name entry", ErrUnknownCountry, name)
}

// fantasyMatcher is one rule of the fantasy-source resolution cascade:
// a pure function from (query, candidate pool) to the candidates it
// keeps.
type fantasyMatcher func(info FantasyPlayerInfo, pool []player.Player) []player.Player

// matchExactFirstLast keeps candidates whose names equal the record's
// first_name/second_name pair exactly.
func matchExactFirstLast(info FantasyPlayerInfo, pool []player.Player) []player.Player {
	var out []player.Player
	for _, p := range pool {
		if p.FirstName == info.FirstName && p.LastName == info.SecondName {
			out = append(out, p)
		}
	}
	return out
}

// matchWebNameLast keeps candidates whose last name equals the web
// name and whose first name equals the first token of the record's
// first_name. Catches merged "web names" like Son for Heung-Min Son.
func matchWebNameLast(info FantasyPlayerInfo, pool []player.Player) []player.Player {
	firstToken := ""
	if fields := strings.Fields(info.FirstName); len(fields) > 0 {
		firstToken = fields[0]
	}

	var out []player.Player
	for _, p := range pool {
		if p.LastName == info.WebName && p.FirstName == firstToken {
			out = append(out, p)
		}
	}
	return out
}

// matchSplitWebName splits a whitespace-bearing web name on its first
// whitespace run and matches both parts exactly. Skipped for
// single-word web names.
func matchSplitWebName(info FantasyPlayerInfo, pool []player.Player) []player.Player {
	first, last, err := SplitFullName(info.WebName)
	if err != nil {
		return nil
	}

	var out []player.Player
	for _, p := range pool {
		if p.FirstName == first && p.LastName == last {
			out = append(out, p)
		}
	}
	return out
}

var fantasyCascade = []fantasyMatcher{
	matchExactFirstLast,
	matchWebNameLast,
	matchSplitWebName,
}

// ResolveByFantasyInfo runs the name-matching cascade against the
// pool of players with at least one appearance in the given
// competition. A step that yields exactly one candidate short-circuits
// the cascade; a step that yields more than one fails immediately,
// since ties are never auto-resolved. This path never creates a
// canonical player.
func (s *ResolverService) ResolveByFantasyInfo(ctx context.Context, competitionID int64, info FantasyPlayerInfo) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolverService.ResolveByFantasyInfo")
	defer span.End()

	pool, err := s.playerRepo.ListWithCompetitionAppearance(ctx, competitionID)
	if err != nil {
		return player.Player{}, fmt.Errorf("list candidate players competition_id=%d: %w", competitionID, err)
	}

	for _, match := range fantasyCascade {
		candidates := match(info, pool)
		switch len(candidates) {
		case 0:
			continue
		case 1:
			return candidates[0], nil
		default:
			s.logger.ErrorContext(ctx, "fantasy name cascade matched multiple players",
				"first_name", info.FirstName,
				"second_name", info.SecondName,
				"web_name", info.WebName,
				"candidates", len(candidates),
			)
			return player.Player{}, fmt.Errorf("%w: %d players match fantasy record %s %s (%s)",
				ErrAmbiguousMatch, len(candidates), info.FirstName, info.SecondName, info.WebName)
		}
	}

	s.logger.ErrorContext(ctx, "fantasy name cascade exhausted without a match",
		"first_name", info.FirstName,
		"second_name", info.SecondName,
		"web_name", info.WebName,
	)
	return player.Player{}, fmt.Errorf("%w: no player matches fantasy record %s %s (%s)",
		ErrNoMatchFound, info.FirstName, info.SecondName, info.WebName)
}

// ResolveByScrapeSearch locates the scrape-target ID for a canonical
// player by fuzzy name search, accepting the first search result whose
// team string overlaps a team the player has appeared for. The ID is
// persisted before returning.
func (s *ResolverService) ResolveByScrapeSearch(ctx context.Context, playerID int64) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolverService.ResolveByScrapeSearch")
	defer span.End()

	p, found, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return 0, fmt.Errorf("get player %d: %w", playerID, err)
	}
	if !found {
		return 0, fmt.Errorf("%w: player %d", ErrNotFound, playerID)
	}

	teamNames, err := s.teamRepo.ListNamesByPlayer(ctx, playerID)
	if err != nil {
		return 0, fmt.Errorf("list team names for player %d: %w", playerID, err)
	}

	for _, query := range scrapeSearchQueries(p) {
		results, err := s.searchScrape(ctx, query)
		if err != nil {
			return 0, fmt.Errorf("scrape search %q: %w", query, err)
		}

		for _, candidate := range results {
			if !teamNameOverlaps(candidate.Team, teamNames) {
				continue
			}
			if err := s.playerRepo.SetScrapeID(ctx, playerID, candidate.ID); err != nil {
				return 0, fmt.Errorf("set scrape id for player %d: %w", playerID, err)
			}
			return candidate.ID, nil
		}
	}

	// Every tracked player is expected to resolve eventually, so an
	// exhausted search is an operational alert rather than a skip.
	s.logger.ErrorContext(ctx, "scrape search exhausted without a team match",
		"player_id", playerID,
		"name", p.FullName(),
	)
	return 0, fmt.Errorf("%w: scrape target has no candidate for player %d (%s)", ErrNoMatchFound, playerID, p.FullName())
}

// SyncScrapeIDs walks the competition's player pool and resolves the
// scrape-target ID of every player that does not carry one yet.
// Players the search cannot place are collected per record so one
// unresolvable name does not halt the batch; storage and upstream
// errors abort the run.
func (s *ResolverService) SyncScrapeIDs(ctx context.Context, competitionID int64) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolverService.SyncScrapeIDs")
	defer span.End()

	pool, err := s.playerRepo.ListWithCompetitionAppearance(ctx, competitionID)
	if err != nil {
		return SyncResult{}, fmt.Errorf("list candidate players competition_id=%d: %w", competitionID, err)
	}

	var result SyncResult
	for _, p := range pool {
		if p.ScrapeID != nil {
			result.Skipped++
			continue
		}

		if _, err := s.ResolveByScrapeSearch(ctx, p.ID); err != nil {
			if errors.Is(err, ErrNoMatchFound) {
				result.Failures = append(result.Failures, fmt.Sprintf("player %d (%s): %v", p.ID, p.FullName(), err))
				continue
			}
			return result, err
		}
		result.Mapped++
	}

	return result, nil
}

// searchScrape memoizes scrape searches per query string. Concurrent
// resolutions of the same surname collapse into one upstream request.
func (s *ResolverService) searchScrape(ctx context.Context, query string) ([]ScrapeCandidate, error) {
	value, err := s.searchCache.GetOrLoad(ctx, "scrape:search:"+query, func(ctx context.Context) (any, error) {
		return s.scraper.Search(ctx, query)
	})
	if err != nil {
		return nil, err
	}

	results, _ := value.([]ScrapeCandidate)
	return results, nil
}

// scrapeSearchQueries lists the search strings in decreasing
// specificity: full name, last name, first name. A single-word
// canonical name only yields the one-word query.
func scrapeSearchQueries(p player.Player) []string {
	var queries []string
	if p.LastName != "" {
		if p.FirstName != "" {
			queries = append(queries, p.FullName())
		}
		queries = append(queries, p.LastName)
	}
	if p.FirstName != "" {
		queries = append(queries, p.FirstName)
	}
	return queries
}

// teamNameOverlaps reports whether the external team string and any
// known team name contain one another. The comparison is
// case-sensitive and deliberately tolerates either direction of
// containment. An empty external team string matches nothing: every
// known name contains "", so it would otherwise match everything.
func teamNameOverlaps(externalTeam string, known []string) bool {
	if externalTeam == "" {
		return false
	}
	for _, name := range known {
		if name == "" {
			continue
		}
		if strings.Contains(externalTeam, name) || strings.Contains(name, externalTeam) {
			return true
		}
	}
	return false
}
