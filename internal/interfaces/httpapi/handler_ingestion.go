package httpapi

import (
	"fmt"
	"net/http"

	"github.com/openfooty/statsync/internal/usecase"
)

type ingestFixturesRequest struct {
	Season          int     `json:"season" validate:"required,gt=0"`
	FixtureIDs      []int64 `json:"fixture_ids" validate:"required,min=1,dive,gt=0"`
	MaxWorkers      int     `json:"max_workers" validate:"omitempty,gte=1"`
	ContinueOnError *bool   `json:"continue_on_error"`
}

func (h *Handler) RunIngestFixturesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunIngestFixturesJob")
	defer span.End()

	var req ingestFixturesRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	continueOnError := true
	if req.ContinueOnError != nil {
		continueOnError = *req.ContinueOnError
	}

	result, err := h.ingestJobService.Run(ctx, usecase.IngestJobInput{
		Season:          req.Season,
		FixtureIDs:      req.FixtureIDs,
		MaxWorkers:      req.MaxWorkers,
		ContinueOnError: continueOnError,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "ingest fixtures job failed", "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

type syncFantasyRequest struct {
	Season int `json:"season" validate:"required,gt=0"`
}

type syncFantasyResponse struct {
	Mapped   int      `json:"mapped"`
	Ingested int      `json:"ingested"`
	Skipped  int      `json:"skipped"`
	Failures []string `json:"failures,omitempty"`
}

// RunSyncFantasyJob attaches fantasy IDs to the competition's player
// pool and then pulls every mapped player's per-round history for the
// requested season.
func (h *Handler) RunSyncFantasyJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncFantasyJob")
	defer span.End()

	var req syncFantasyRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	mapResult, err := h.fantasyHistoryService.SyncPlayerIDs(ctx, h.competitionID)
	if err != nil {
		h.logger.ErrorContext(ctx, "fantasy id sync failed", "competition_id", h.competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	pool, err := h.playerRepo.ListWithCompetitionAppearance(ctx, h.competitionID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list player pool failed", "competition_id", h.competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	historyResult, err := h.fantasyHistoryService.IngestAllHistories(ctx, req.Season, pool, h.fantasyConcurrency)
	if err != nil {
		h.logger.ErrorContext(ctx, "fantasy history ingest failed", "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, syncFantasyResponse{
		Mapped:   mapResult.Mapped,
		Ingested: historyResult.Ingested,
		Skipped:  historyResult.Skipped,
		Failures: append(mapResult.Failures, historyResult.Failures...),
	})
}

type resolveScrapeIDsResponse struct {
	Mapped   int      `json:"mapped"`
	Skipped  int      `json:"skipped"`
	Failures []string `json:"failures,omitempty"`
}

// RunResolveScrapeIDsJob walks the competition's player pool and
// attaches scrape-target IDs to the players that still lack one.
// Takes no body; the pool is defined by the configured competition.
func (h *Handler) RunResolveScrapeIDsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunResolveScrapeIDsJob")
	defer span.End()

	result, err := h.resolverService.SyncScrapeIDs(ctx, h.competitionID)
	if err != nil {
		h.logger.ErrorContext(ctx, "scrape id sync failed", "competition_id", h.competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resolveScrapeIDsResponse{
		Mapped:   result.Mapped,
		Skipped:  result.Skipped,
		Failures: result.Failures,
	})
}

type advancedMetricsItem struct {
	PlayerID  int64    `json:"player_id" validate:"required,gt=0"`
	FixtureID int64    `json:"fixture_id" validate:"required,gt=0"`
	TeamID    int64    `json:"team_id" validate:"required,gt=0"`
	Goals     *int     `json:"goals"`
	Assists   *int     `json:"assists"`
	Shots     *int     `json:"shots"`
	KeyPasses *int     `json:"key_passes"`
	XG        *float64 `json:"xg"`
	XA        *float64 `json:"xa"`
	NPG       *int     `json:"npg"`
	NPXG      *float64 `json:"npxg"`
	XGChain   *float64 `json:"xg_chain"`
	XGBuildup *float64 `json:"xg_buildup"`
	Position  *string  `json:"position"`
}

type advancedMetricsRequest struct {
	Items []advancedMetricsItem `json:"items" validate:"required,min=1,dive"`
}

type advancedMetricsResponse struct {
	Applied  int      `json:"applied"`
	Skipped  int      `json:"skipped"`
	Failures []string `json:"failures,omitempty"`
}

// IngestAdvancedMetrics merges scraped per-fixture metric blocks into
// existing participation rows. Rows that already carry metrics are
// counted as skipped, never overwritten.
func (h *Handler) IngestAdvancedMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestAdvancedMetrics")
	defer span.End()

	var req advancedMetricsRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var resp advancedMetricsResponse
	for _, item := range req.Items {
		applied, err := h.participationService.MergeAdvancedMetrics(ctx, item.PlayerID, item.FixtureID, item.TeamID, usecase.AdvancedMetricsInput{
			Goals:     item.Goals,
			Assists:   item.Assists,
			Shots:     item.Shots,
			KeyPasses: item.KeyPasses,
			XG:        item.XG,
			XA:        item.XA,
			NPG:       item.NPG,
			NPXG:      item.NPXG,
			XGChain:   item.XGChain,
			XGBuildup: item.XGBuildup,
			Position:  item.Position,
		})
		if err != nil {
			h.logger.WarnContext(ctx, "merge advanced metrics failed",
				"player_id", item.PlayerID,
				"fixture_id", item.FixtureID,
				"team_id", item.TeamID,
				"error", err,
			)
			resp.Failures = append(resp.Failures, fmt.Sprintf("player=%d fixture=%d team=%d: %v", item.PlayerID, item.FixtureID, item.TeamID, err))
			continue
		}
		if applied {
			resp.Applied++
		} else {
			resp.Skipped++
		}
	}

	writeSuccess(ctx, w, http.StatusOK, resp)
}
