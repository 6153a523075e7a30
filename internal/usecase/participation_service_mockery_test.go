package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/openfooty/statsync/internal/domain/participation"
	fixturemock "github.com/openfooty/statsync/internal/mocks/domain/fixture"
	participationmock "github.com/openfooty/statsync/internal/mocks/domain/participation"
	playermock "github.com/openfooty/statsync/internal/mocks/domain/player"
	"github.com/openfooty/statsync/internal/platform/logging"
)

func newMockedParticipationService(t *testing.T) (*ParticipationService, *participationmock.Repository) {
	playerRepo := playermock.NewRepository(t)
	participationRepo := participationmock.NewRepository(t)
	fixtureRepo := fixturemock.NewRepository(t)

	resolver := NewResolverService(playerRepo, nil, nil, nil, logging.NewNop())
	svc := NewParticipationService(playerRepo, participationRepo, fixtureRepo, resolver, nil, logging.NewNop())

	return svc, participationRepo
}

func fullMetricsInput() AdvancedMetricsInput {
	goals, assists, shots, keyPasses, npg := 1, 0, 3, 2, 1
	xg, xa, npxg, xgChain, xgBuildup := 0.82, 0.11, 0.64, 1.02, 0.4
	position := "FW"
	return AdvancedMetricsInput{
		Goals:     &goals,
		Assists:   &assists,
		Shots:     &shots,
		KeyPasses: &keyPasses,
		XG:        &xg,
		XA:        &xa,
		NPG:       &npg,
		NPXG:      &npxg,
		XGChain:   &xgChain,
		XGBuildup: &xgBuildup,
		Position:  &position,
	}
}

func TestMergeAdvancedMetrics_AppliesOnceUsingMockery(t *testing.T) {
	t.Parallel()

	svc, participationRepo := newMockedParticipationService(t)

	participationRepo.
		On("Get", mock.Anything, int64(10), int64(8001), int64(1)).
		Return(participation.Participation{PlayerID: 10, FixtureID: 8001, TeamID: 1, GameweekID: 5001, Minutes: 90}, true, nil).
		Once()
	participationRepo.
		On("SetAdvancedMetrics", mock.Anything, int64(10), int64(8001), int64(1), mock.MatchedBy(func(m participation.AdvancedMetrics) bool {
			return m.Goals == 1 && m.Shots == 3 && m.Position == "FW"
		})).
		Return(nil).
		Once()

	applied, err := svc.MergeAdvancedMetrics(t.Context(), 10, 8001, 1, fullMetricsInput())
	if err != nil {
		t.Fatalf("merge advanced metrics: %v", err)
	}
	if !applied {
		t.Fatal("expected the advanced block to be applied")
	}
}

func TestMergeAdvancedMetrics_SkipsWrittenBlockUsingMockery(t *testing.T) {
	t.Parallel()

	svc, participationRepo := newMockedParticipationService(t)

	participationRepo.
		On("Get", mock.Anything, int64(10), int64(8001), int64(1)).
		Return(participation.Participation{
			PlayerID:   10,
			FixtureID:  8001,
			TeamID:     1,
			GameweekID: 5001,
			Minutes:    90,
			Advanced:   &participation.AdvancedMetrics{Goals: 2},
		}, true, nil).
		Once()

	applied, err := svc.MergeAdvancedMetrics(t.Context(), 10, 8001, 1, fullMetricsInput())
	if err != nil {
		t.Fatalf("merge advanced metrics: %v", err)
	}
	if applied {
		t.Fatal("expected the existing advanced block to be left alone")
	}
}

func TestMergeAdvancedMetrics_MissingRowUsingMockery(t *testing.T) {
	t.Parallel()

	svc, participationRepo := newMockedParticipationService(t)

	participationRepo.
		On("Get", mock.Anything, int64(99), int64(8001), int64(1)).
		Return(participation.Participation{}, false, nil).
		Once()

	_, err := svc.MergeAdvancedMetrics(t.Context(), 99, 8001, 1, fullMetricsInput())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
