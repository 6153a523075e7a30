package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/openfooty/statsync/internal/domain/rawdata"
	"github.com/openfooty/statsync/internal/platform/logging"
)

// LineupFetcher is the slice of the football-data gateway the batch
// job needs: one fixture's participation payload plus the raw bytes
// it was decoded from.
type LineupFetcher interface {
	FetchFixtureLineup(ctx context.Context, fixtureID int64) (FixturePayload, []byte, error)
}

// IngestJobInput describes one batch ingestion run. Season is
// explicit: the job layer sources it once at the boundary so the core
// stays pure with respect to time.
type IngestJobInput struct {
	Season     int
	FixtureIDs []int64
	MaxWorkers int
	// ContinueOnError keeps the run going past per-fixture ingestion
	// failures, collecting them instead of halting.
	ContinueOnError bool
}

type IngestJobResult struct {
	FixtureCount int      `json:"fixture_count"`
	Ingested     int      `json:"ingested"`
	Failed       int      `json:"failed"`
	WorkerCount  int      `json:"worker_count"`
	Failures     []string `json:"failures,omitempty"`
}

// IngestJobService drives batch fixture ingestion: payloads are
// prefetched with a worker pool, then applied strictly one fixture at
// a time in ascending fixture order so re-runs are deterministic.
type IngestJobService struct {
	lineups       LineupFetcher
	participation *ParticipationService
	rawRepo       rawdata.Repository
	logger        *logging.Logger
	now           func() time.Time
}

func NewIngestJobService(
	lineups LineupFetcher,
	participation *ParticipationService,
	rawRepo rawdata.Repository,
	logger *logging.Logger,
) *IngestJobService {
	if logger == nil {
		logger = logging.Default()
	}

	return &IngestJobService{
		lineups:       lineups,
		participation: participation,
		rawRepo:       rawRepo,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *IngestJobService) Run(ctx context.Context, input IngestJobInput) (IngestJobResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestJobService.Run")
	defer span.End()

	if input.Season <= 0 {
		return IngestJobResult{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if len(input.FixtureIDs) == 0 {
		return IngestJobResult{}, fmt.Errorf("%w: fixture ids are required", ErrInvalidInput)
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = 4
	}
	if workerCount > len(input.FixtureIDs) {
		workerCount = len(input.FixtureIDs)
	}

	fixtureIDs := append([]int64(nil), input.FixtureIDs...)
	sort.Slice(fixtureIDs, func(i, j int) bool { return fixtureIDs[i] < fixtureIDs[j] })

	type prefetched struct {
		payload FixturePayload
		raw     []byte
		err     error
	}
	payloads := make(map[int64]prefetched, len(fixtureIDs))
	var payloadsMu sync.Mutex

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return IngestJobResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for _, fixtureID := range fixtureIDs {
		fixtureID := fixtureID
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()
			payload, raw, fetchErr := s.lineups.FetchFixtureLineup(ctx, fixtureID)
			payloadsMu.Lock()
			payloads[fixtureID] = prefetched{payload: payload, raw: raw, err: fetchErr}
			payloadsMu.Unlock()
		}); err != nil {
			workers.Done()
			return IngestJobResult{}, fmt.Errorf("submit prefetch fixture=%d: %w", fixtureID, err)
		}
	}
	workers.Wait()

	result := IngestJobResult{
		FixtureCount: len(fixtureIDs),
		WorkerCount:  workerCount,
	}

	capturedAt := s.now().UTC()
	for _, fixtureID := range fixtureIDs {
		item := payloads[fixtureID]
		if item.err == nil {
			item.err = s.captureRawPayload(ctx, fixtureID, item.raw, capturedAt)
		}
		if item.err == nil {
			item.err = s.participation.IngestFixture(ctx, input.Season, item.payload)
		}

		if item.err != nil {
			result.Failed++
			result.Failures = append(result.Failures, fmt.Sprintf("fixture %d: %v", fixtureID, item.err))
			s.logger.ErrorContext(ctx, "fixture ingestion failed",
				"fixture_id", fixtureID,
				"error", item.err,
			)
			if !input.ContinueOnError {
				return result, fmt.Errorf("ingest fixture %d: %w", fixtureID, item.err)
			}
			continue
		}
		result.Ingested++
	}

	return result, nil
}

func (s *IngestJobService) captureRawPayload(ctx context.Context, fixtureID int64, raw []byte, fetchedAt time.Time) error {
	if s.rawRepo == nil || len(raw) == 0 {
		return nil
	}

	hash := sha256.Sum256(raw)
	payload := rawdata.Payload{
		Source:      "footballdata",
		EntityType:  "fixture_lineup",
		EntityKey:   fmt.Sprintf("fixture:%d", fixtureID),
		PayloadJSON: string(raw),
		PayloadHash: hex.EncodeToString(hash[:]),
		FetchedAt:   fetchedAt,
	}
	if err := s.rawRepo.UpsertMany(ctx, []rawdata.Payload{payload}); err != nil {
		return fmt.Errorf("capture raw lineup payload fixture=%d: %w", fixtureID, err)
	}

	return nil
}
