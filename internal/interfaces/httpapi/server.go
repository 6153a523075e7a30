package httpapi

import (
	"net/http"

	"github.com/openfooty/statsync/internal/platform/id"
	"github.com/openfooty/statsync/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	corsAllowedOrigins []string,
	internalJobToken string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.Handle("POST /v1/internal/jobs/ingest-fixtures", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunIngestFixturesJob)))
	mux.Handle("POST /v1/internal/jobs/sync-fantasy", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncFantasyJob)))
	mux.Handle("POST /v1/internal/jobs/resolve-scrape-ids", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunResolveScrapeIDsJob)))
	mux.Handle("POST /v1/internal/ingestion/advanced-metrics", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.IngestAdvancedMetrics)))

	return RequestTracing(RequestID(id.NewRandomGenerator(), RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux)))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
