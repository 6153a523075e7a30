package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/openfooty/statsync/internal/infrastructure/repository/memory"
	"github.com/openfooty/statsync/internal/platform/logging"
)

type stubLineupFetcher struct {
	mu       sync.Mutex
	payloads map[int64]FixturePayload
	errs     map[int64]error
	fetched  []int64
}

func (s *stubLineupFetcher) FetchFixtureLineup(_ context.Context, fixtureID int64) (FixturePayload, []byte, error) {
	s.mu.Lock()
	s.fetched = append(s.fetched, fixtureID)
	s.mu.Unlock()

	if err, ok := s.errs[fixtureID]; ok {
		return FixturePayload{}, nil, err
	}
	payload, ok := s.payloads[fixtureID]
	if !ok {
		return FixturePayload{}, nil, fmt.Errorf("%w: football-data has no fixture %d", ErrUpstream, fixtureID)
	}

	return payload, []byte(fmt.Sprintf(`{"fixture":%d}`, fixtureID)), nil
}

type ingestJobFixture struct {
	svc               *IngestJobService
	fetcher           *stubLineupFetcher
	rawRepo           *memory.RawDataRepository
	participationRepo *memory.ParticipationRepository
}

func newIngestJobFixture() ingestJobFixture {
	base := newParticipationFixture(seededLineupPlayers())
	fetcher := &stubLineupFetcher{
		payloads: map[int64]FixturePayload{},
		errs:     map[int64]error{},
	}
	rawRepo := memory.NewRawDataRepository()

	return ingestJobFixture{
		svc:               NewIngestJobService(fetcher, base.svc, rawRepo, logging.NewNop()),
		fetcher:           fetcher,
		rawRepo:           rawRepo,
		participationRepo: base.participationRepo,
	}
}

func payloadForFixture(fixtureID int64) FixturePayload {
	payload := testPayload()
	payload.FixtureID = fixtureID
	return payload
}

func TestRunIngestJob_ValidatesInput(t *testing.T) {
	t.Parallel()

	f := newIngestJobFixture()

	_, err := f.svc.Run(t.Context(), IngestJobInput{Season: 0, FixtureIDs: []int64{8001}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing season, got %v", err)
	}

	_, err = f.svc.Run(t.Context(), IngestJobInput{Season: 2025})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty fixture list, got %v", err)
	}
}

func TestRunIngestJob_IngestsAllAndCapturesRaw(t *testing.T) {
	t.Parallel()

	f := newIngestJobFixture()
	f.fetcher.payloads[8001] = payloadForFixture(8001)
	f.fetcher.payloads[8002] = payloadForFixture(8002)

	result, err := f.svc.Run(t.Context(), IngestJobInput{
		Season:          2025,
		FixtureIDs:      []int64{8002, 8001},
		MaxWorkers:      2,
		ContinueOnError: true,
	})
	if err != nil {
		t.Fatalf("run ingest job: %v", err)
	}
	if result.FixtureCount != 2 || result.Ingested != 2 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	for _, fixtureID := range []int64{8001, 8002} {
		if _, found, _ := f.participationRepo.Get(t.Context(), 1, fixtureID, 1); !found {
			t.Fatalf("expected participation rows for fixture %d", fixtureID)
		}
	}

	if f.rawRepo.Count() != 2 {
		t.Fatalf("expected 2 captured payloads, got %d", f.rawRepo.Count())
	}
	captured, found := f.rawRepo.Get("footballdata", "fixture_lineup", "fixture:8001")
	if !found {
		t.Fatal("expected fixture 8001 payload to be captured")
	}
	wantHash := sha256.Sum256([]byte(`{"fixture":8001}`))
	if captured.PayloadHash != hex.EncodeToString(wantHash[:]) {
		t.Fatalf("unexpected payload hash: %s", captured.PayloadHash)
	}
}

func TestRunIngestJob_ClampsWorkerCount(t *testing.T) {
	t.Parallel()

	f := newIngestJobFixture()
	f.fetcher.payloads[8001] = payloadForFixture(8001)

	result, err := f.svc.Run(t.Context(), IngestJobInput{
		Season:          2025,
		FixtureIDs:      []int64{8001},
		MaxWorkers:      64,
		ContinueOnError: true,
	})
	if err != nil {
		t.Fatalf("run ingest job: %v", err)
	}
	if result.WorkerCount != 1 {
		t.Fatalf("expected worker count clamped to fixture count, got %d", result.WorkerCount)
	}
}

func TestRunIngestJob_ContinueOnErrorCollectsFailures(t *testing.T) {
	t.Parallel()

	f := newIngestJobFixture()
	f.fetcher.payloads[8001] = payloadForFixture(8001)
	f.fetcher.errs[9999] = fmt.Errorf("%w: lineup missing", ErrUpstream)

	result, err := f.svc.Run(t.Context(), IngestJobInput{
		Season:          2025,
		FixtureIDs:      []int64{9999, 8001},
		ContinueOnError: true,
	})
	if err != nil {
		t.Fatalf("expected run to continue past the failure, got %v", err)
	}
	if result.Ingested != 1 || result.Failed != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.Failures) != 1 {
		t.Fatalf("expected one collected failure, got %v", result.Failures)
	}
}

func TestRunIngestJob_HaltsOnFirstFailureWhenConfigured(t *testing.T) {
	t.Parallel()

	f := newIngestJobFixture()
	f.fetcher.payloads[8001] = payloadForFixture(8001)
	f.fetcher.errs[7000] = fmt.Errorf("%w: lineup missing", ErrUpstream)

	// 7000 sorts first, so the halting run never applies 8001.
	_, err := f.svc.Run(t.Context(), IngestJobInput{
		Season:          2025,
		FixtureIDs:      []int64{8001, 7000},
		ContinueOnError: false,
	})
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected the fetch failure to halt the run, got %v", err)
	}
	if _, found, _ := f.participationRepo.Get(t.Context(), 1, 8001, 1); found {
		t.Fatal("expected no rows applied after the halting failure")
	}
}
