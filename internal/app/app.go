package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/boxyard/inventory-service/internal/config"
	"github.com/boxyard/inventory-service/internal/repositories"
	"github.com/boxyard/inventory-service/internal/services"
	"github.com/boxyard/inventory-service/internal/utils"
)

const (
	maxRetries     = 5
	connectTimeout = 5 * time.Second
	initialBackoff = 500 * time.Millisecond
)

type App struct {
	Config *config.Config
	DB     *pgxpool.Pool

	UnitRepo   repositories.UnitRepository
	DepotRepo  repositories.DepotRepository
	SearchRepo repositories.UnitSearchRepository

	SearchService    *services.SearchService
	InventoryService *services.InventoryService
}

func NewApp(cfg *config.Config) (*App, error) {
	var (
		dbPool  *pgxpool.Pool
		err     error
		backoff = initialBackoff
	)

	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		dbPool, err = newDBPool(ctx, cfg.DBUrl)
		if err == nil {
			utils.Logger.Infof("Successfully connected to database on attempt %d", i)
			break
		}

		utils.Logger.WithError(err).Warnf(
			"Failed to connect to database on attempt %d/%d. Retrying in %v...",
			i, maxRetries, backoff,
		)

		if i == maxRetries {
			return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
		}

		time.Sleep(backoff)
		backoff *= 2
	}

	unitRepo := repositories.NewUnitRepository(dbPool)
	depotRepo := repositories.NewDepotRepository(dbPool)
	searchRepo := repositories.NewUnitSearchRepository(dbPool)

	geocoder := utils.NewGeocodeClient(cfg.GeocoderAPIKey)

	return &App{
		Config:           cfg,
		DB:               dbPool,
		UnitRepo:         unitRepo,
		DepotRepo:        depotRepo,
		SearchRepo:       searchRepo,
		SearchService:    services.NewSearchService(searchRepo, geocoder),
		InventoryService: services.NewInventoryService(unitRepo, depotRepo),
	}, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
		utils.Logger.Info("Database connection closed.")
	}
}

// newDBPool constructs the pgx pool with production-safe settings:
// MaxConnIdleTime retires idle sockets before the fronting proxy does, and
// HealthCheckPeriod keeps every conn warm with a background "SELECT 1".
func newDBPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	cfg.MaxConnIdleTime = 2 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	return pgxpool.ConnectConfig(ctx, cfg)
}
