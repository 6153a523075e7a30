package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/openfooty/statsync/external/fantasyleague"
	"github.com/openfooty/statsync/external/footballdata"
	"github.com/openfooty/statsync/external/scrapesite"
	"github.com/openfooty/statsync/internal/config"
	"github.com/openfooty/statsync/internal/domain/player"
	"github.com/openfooty/statsync/internal/infrastructure/repository/postgres"
	"github.com/openfooty/statsync/internal/interfaces/httpapi"
	"github.com/openfooty/statsync/internal/platform/logging"
	"github.com/openfooty/statsync/internal/platform/resilience"
	"github.com/openfooty/statsync/internal/usecase"
)

// App bundles the wired HTTP server with the resources it owns.
type App struct {
	Server *http.Server
	DB     *sqlx.DB
}

// Deps holds the wired services shared by the HTTP server and the
// ingestion CLI.
type Deps struct {
	PlayerRepo     player.Repository
	Resolver       *usecase.ResolverService
	Participation  *usecase.ParticipationService
	IngestJob      *usecase.IngestJobService
	FantasyHistory *usecase.FantasyHistoryService
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}

	deps := NewDeps(cfg, db, logger)

	handler := httpapi.NewHandler(
		deps.IngestJob,
		deps.FantasyHistory,
		deps.Participation,
		deps.Resolver,
		deps.PlayerRepo,
		cfg.CompetitionID,
		cfg.FantasyFetchConcurrency,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{Server: server, DB: db}, nil
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// NewDeps wires the postgres repositories, the three source gateways
// and the usecase services on top of an open database handle.
func NewDeps(cfg config.Config, db *sqlx.DB, logger *logging.Logger) *Deps {
	if logger == nil {
		logger = logging.Default()
	}

	playerRepo := postgres.NewPlayerRepository(db)
	countryRepo := postgres.NewCountryRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	participationRepo := postgres.NewParticipationRepository(db)
	fixtureRepo := postgres.NewFixtureRepository(db)
	fantasyStatsRepo := postgres.NewFantasyStatsRepository(db)
	rawDataRepo := postgres.NewRawDataRepository(db)

	footballDataClient := footballdata.NewClient(footballdata.ClientConfig{
		BaseURL:    cfg.FootballDataBaseURL,
		Token:      cfg.FootballDataToken,
		Timeout:    cfg.FootballDataTimeout,
		MaxRetries: cfg.FootballDataMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FootballDataCircuitEnabled,
			FailureThreshold: cfg.FootballDataCircuitFailureCount,
			OpenTimeout:      cfg.FootballDataCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FootballDataCircuitHalfOpenMaxReq,
		},
	})
	fantasyClient := fantasyleague.NewClient(fantasyleague.ClientConfig{
		BaseURL:    cfg.FantasyBaseURL,
		Timeout:    cfg.FantasyTimeout,
		MaxRetries: cfg.FantasyMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FantasyCircuitEnabled,
			FailureThreshold: cfg.FantasyCircuitFailureCount,
			OpenTimeout:      cfg.FantasyCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FantasyCircuitHalfOpenMaxReq,
		},
	})
	scrapeClient := scrapesite.NewClient(scrapesite.ClientConfig{
		BaseURL:    cfg.ScrapeBaseURL,
		Timeout:    cfg.ScrapeTimeout,
		MaxRetries: cfg.ScrapeMaxRetries,
		Logger:     logger,
	})

	resolver := usecase.NewResolverService(playerRepo, countryRepo, teamRepo, scrapeClient, logger)
	participationService := usecase.NewParticipationService(playerRepo, participationRepo, fixtureRepo, resolver, footballDataClient, logger)
	ingestJobService := usecase.NewIngestJobService(footballDataClient, participationService, rawDataRepo, logger)
	fantasyHistoryService := usecase.NewFantasyHistoryService(playerRepo, fantasyStatsRepo, resolver, fantasyClient, logger)

	return &Deps{
		PlayerRepo:     playerRepo,
		Resolver:       resolver,
		Participation:  participationService,
		IngestJob:      ingestJobService,
		FantasyHistory: fantasyHistoryService,
	}
}

// OpenDB connects to postgres with otel instrumentation on every query.
func OpenDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.name", dbNameFromURL(dbURL)),
		),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
