package routes

const (
	// Health
	Health = "/health"

	// Search
	UnitsSearch = "/api/v1/units/search"

	// Inventory management
	Units      = "/api/v1/units"
	UnitByID   = "/api/v1/units/{id}"
	Depots     = "/api/v1/depots"
	DepotByID  = "/api/v1/depots/{id}"
)
