package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/boxyard/inventory-service/internal/models"
	"github.com/boxyard/inventory-service/internal/utils"
)

/*
SeedDemoData loads a small, fixed depot/unit data set for local development.
Safe to call repeatedly: seeding is skipped when the first demo depot
already exists.
*/
func (a *App) SeedDemoData(ctx context.Context) error {
	existing, err := a.DepotRepo.GetByName(ctx, demoDepots[0].Name)
	if err != nil {
		return fmt.Errorf("check existing demo data: %w", err)
	}
	if existing != nil {
		utils.Logger.Info("Demo data already present, skipping seed")
		return nil
	}

	for i := range demoDepots {
		depot := demoDepots[i]
		depot.ID = uuid.New()
		if err := a.DepotRepo.Create(ctx, &depot); err != nil {
			return fmt.Errorf("seed depot %q: %w", depot.Name, err)
		}

		units := demoUnitsForDepot(depot)
		if err := a.UnitRepo.CreateMany(ctx, units); err != nil {
			return fmt.Errorf("seed units for depot %q: %w", depot.Name, err)
		}
		utils.Logger.Infof("Seeded depot %q with %d units", depot.Name, len(units))
	}
	return nil
}

var demoDepots = []models.Depot{
	{
		Name:       "Los Angeles Yard",
		Address:    "2400 E Pacific Coast Hwy",
		City:       "Long Beach",
		State:      "CA",
		PostalCode: "90806",
		Country:    "US",
		Latitude:   33.8045,
		Longitude:  -118.1893,
	},
	{
		Name:       "Dallas Yard",
		Address:    "4600 S Lamar St",
		City:       "Dallas",
		State:      "TX",
		PostalCode: "75215",
		Country:    "US",
		Latitude:   32.7459,
		Longitude:  -96.7795,
	},
	{
		Name:       "Newark Yard",
		Address:    "200 Port St",
		City:       "Newark",
		State:      "NJ",
		PostalCode: "07114",
		Country:    "US",
		Latitude:   40.6895,
		Longitude:  -74.1440,
	},
}

func demoUnitsForDepot(depot models.Depot) []models.Unit {
	location := fmt.Sprintf("%s, %s", depot.City, depot.State)
	specs := []struct {
		typ       string
		condition string
		price     float64
	}{
		{"20DC", "new", 2450},
		{"20DC", "cargo-worthy", 1650},
		{"40DC", "cargo-worthy", 2100},
		{"40HC", "new", 3350},
		{"40HC", "one-trip", 3150},
		{"40HC-refurb", "refurbished", 2550},
	}

	units := make([]models.Unit, 0, len(specs))
	for i, spec := range specs {
		units = append(units, models.Unit{
			ID:          uuid.New(),
			SKU:         fmt.Sprintf("%s-%s-%02d", depot.State, spec.typ, i+1),
			Type:        spec.typ,
			Condition:   spec.condition,
			Price:       spec.price,
			Name:        fmt.Sprintf("%s %s container", spec.typ, spec.condition),
			Description: fmt.Sprintf("%s container in %s condition at %s", spec.typ, spec.condition, location),
			Region:      depot.State,
			City:        depot.City,
			PostalCode:  depot.PostalCode,
			Location:    location,
			DepotID:     &depot.ID,
			Available:   true,
		})
	}
	return units
}
