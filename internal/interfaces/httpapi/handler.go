package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/openfooty/statsync/internal/domain/player"
	"github.com/openfooty/statsync/internal/platform/logging"
	"github.com/openfooty/statsync/internal/usecase"
)

type Handler struct {
	ingestJobService      *usecase.IngestJobService
	fantasyHistoryService *usecase.FantasyHistoryService
	participationService  *usecase.ParticipationService
	resolverService       *usecase.ResolverService
	playerRepo            player.Repository
	competitionID         int64
	fantasyConcurrency    int
	logger                *logging.Logger
	validator             *validator.Validate
}

func NewHandler(
	ingestJobService *usecase.IngestJobService,
	fantasyHistoryService *usecase.FantasyHistoryService,
	participationService *usecase.ParticipationService,
	resolverService *usecase.ResolverService,
	playerRepo player.Repository,
	competitionID int64,
	fantasyConcurrency int,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		ingestJobService:      ingestJobService,
		fantasyHistoryService: fantasyHistoryService,
		participationService:  participationService,
		resolverService:       resolverService,
		playerRepo:            playerRepo,
		competitionID:         competitionID,
		fantasyConcurrency:    fantasyConcurrency,
		logger:                logger,
		validator:             validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeBody(r *http.Request, target any) error {
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validator.Struct(target); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
