package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"

	"github.com/rdietrick/nhl-props/external/nhle"
	"github.com/rdietrick/nhl-props/internal/config"
	cacherepo "github.com/rdietrick/nhl-props/internal/infrastructure/repository/cache"
	"github.com/rdietrick/nhl-props/internal/infrastructure/repository/postgres"
	"github.com/rdietrick/nhl-props/internal/interfaces/httpapi"
	"github.com/rdietrick/nhl-props/internal/platform/cache"
	idgen "github.com/rdietrick/nhl-props/internal/platform/id"
	"github.com/rdietrick/nhl-props/internal/platform/logging"
	"github.com/rdietrick/nhl-props/internal/platform/resilience"
	"github.com/rdietrick/nhl-props/internal/usecase"
)

// NewHTTPServer wires repositories, the provider client, and the use case
// services into a ready-to-run HTTP server.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, nil, err
	}

	trackedRepo := cacherepo.NewTrackedPlayerRepository(
		postgres.NewTrackedPlayerRepository(db),
		cache.NewStore(cfg.PlayerCacheTTL),
	)

	provider := nhle.NewClient(nhle.ClientConfig{
		BaseURL:    cfg.NHLEBaseURL,
		Timeout:    cfg.NHLETimeout,
		MaxRetries: cfg.NHLEMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NHLECircuitEnabled,
			FailureThreshold: cfg.NHLECircuitFailureCount,
			OpenTimeout:      cfg.NHLECircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NHLECircuitHalfOpenMaxReq,
		},
	})

	rosterStore := cache.NewStore(cfg.RosterCacheTTL)
	directorySvc := usecase.NewDirectoryService(provider, rosterStore, logger)
	statsSvc := usecase.NewStatsService(provider, directorySvc, logger)
	trackerSvc := usecase.NewTrackerService(trackedRepo, idgen.NewRandomGenerator(), logger)
	refreshSvc := usecase.NewRefreshService(trackedRepo, statsSvc, logger, cfg.RefreshMaxWorkers)

	handler := httpapi.NewHandler(trackerSvc, directorySvc, statsSvc, refreshSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = db.Close()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, db.Close, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	return db, nil
}
