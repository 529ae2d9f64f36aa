package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/boxyard/inventory-service/internal/dtos"
	"github.com/boxyard/inventory-service/internal/models"
	"github.com/boxyard/inventory-service/internal/repositories"
	"github.com/boxyard/inventory-service/internal/utils"
)

// InventoryService owns the write path for depots and units. Searches never
// go through here; see SearchService.
type InventoryService struct {
	unitRepo  repositories.UnitRepository
	depotRepo repositories.DepotRepository
}

func NewInventoryService(
	unitRepo repositories.UnitRepository,
	depotRepo repositories.DepotRepository,
) *InventoryService {
	return &InventoryService{
		unitRepo:  unitRepo,
		depotRepo: depotRepo,
	}
}

// Helper to check for unique violation error (PostgreSQL specific code)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

/* ---------- depots ---------- */

func (s *InventoryService) CreateDepot(ctx context.Context, req dtos.CreateDepotRequest) (uuid.UUID, error) {
	existing, err := s.depotRepo.GetByName(ctx, req.Name)
	if err != nil {
		return uuid.Nil, err
	}
	if existing != nil {
		return uuid.Nil, utils.ErrDuplicateDepotName
	}

	depot := &models.Depot{
		ID:         uuid.New(),
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	}
	if err := s.depotRepo.Create(ctx, depot); err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, utils.ErrDuplicateDepotName
		}
		return uuid.Nil, err
	}
	return depot.ID, nil
}

func (s *InventoryService) GetDepot(ctx context.Context, id uuid.UUID) (*models.Depot, error) {
	return s.depotRepo.GetByID(ctx, id)
}

func (s *InventoryService) ListDepots(ctx context.Context) ([]*models.Depot, error) {
	return s.depotRepo.ListAll(ctx)
}

/* ---------- units ---------- */

func (s *InventoryService) CreateUnit(ctx context.Context, req dtos.CreateUnitRequest) (uuid.UUID, error) {
	existing, err := s.unitRepo.GetBySKU(ctx, req.SKU)
	if err != nil {
		return uuid.Nil, err
	}
	if existing != nil {
		return uuid.Nil, utils.ErrDuplicateSKU
	}

	if req.DepotID != nil {
		depot, err := s.depotRepo.GetByID(ctx, *req.DepotID)
		if err != nil {
			return uuid.Nil, err
		}
		if depot == nil {
			return uuid.Nil, utils.ErrUnknownDepot
		}
	}

	unit := &models.Unit{
		ID:           uuid.New(),
		SKU:          req.SKU,
		Type:         req.Type,
		Condition:    req.Condition,
		Price:        req.Price,
		Name:         req.Name,
		Description:  req.Description,
		Region:       req.Region,
		City:         req.City,
		PostalCode:   req.PostalCode,
		Location:     req.Location,
		DepotID:      req.DepotID,
		Available:    req.Available,
		FreeShipping: req.FreeShipping,
	}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, utils.ErrDuplicateSKU
		}
		return uuid.Nil, err
	}
	return unit.ID, nil
}

func (s *InventoryService) GetUnit(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	return s.unitRepo.GetByID(ctx, id)
}

func (s *InventoryService) UpdateUnit(ctx context.Context, req dtos.UpdateUnitRequest) (*models.Unit, error) {
	if req.DepotID != nil {
		depot, err := s.depotRepo.GetByID(ctx, *req.DepotID)
		if err != nil {
			return nil, err
		}
		if depot == nil {
			return nil, utils.ErrUnknownDepot
		}
	}

	err := s.unitRepo.UpdateWithRetry(ctx, req.UnitID, func(u *models.Unit) error {
		u.Type = req.Type
		u.Condition = req.Condition
		u.Price = req.Price
		u.Name = req.Name
		u.Description = req.Description
		u.Region = req.Region
		u.City = req.City
		u.PostalCode = req.PostalCode
		u.Location = req.Location
		u.DepotID = req.DepotID
		u.Available = req.Available
		u.FreeShipping = req.FreeShipping
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s.unitRepo.GetByID(ctx, req.UnitID)
}

func (s *InventoryService) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	return s.unitRepo.SoftDelete(ctx, id)
}
