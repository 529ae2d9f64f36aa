package dtos

import (
	"github.com/google/uuid"
)

type CreateDepotRequest struct {
	Name       string  `json:"name" validate:"required"`
	Address    string  `json:"address"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	PostalCode string  `json:"postal_code"`
	Country    string  `json:"country"`
	Latitude   float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude  float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

type CreateDepotResponse struct {
	DepotID uuid.UUID `json:"depot_id"`
}

type CreateUnitRequest struct {
	SKU          string     `json:"sku" validate:"required"`
	Type         string     `json:"type" validate:"required"`
	Condition    string     `json:"condition" validate:"required"`
	Price        float64    `json:"price" validate:"gte=0"`
	Name         string     `json:"name" validate:"required"`
	Description  string     `json:"description"`
	Region       string     `json:"region"`
	City         string     `json:"city"`
	PostalCode   string     `json:"postal_code"`
	Location     string     `json:"location"`
	DepotID      *uuid.UUID `json:"depot_id"`
	Available    bool       `json:"available"`
	FreeShipping bool       `json:"free_shipping"`
}

type CreateUnitResponse struct {
	UnitID uuid.UUID `json:"unit_id"`
}

// UpdateUnitRequest deliberately has no SKU field: SKUs are immutable.
type UpdateUnitRequest struct {
	UnitID       uuid.UUID  `json:"unit_id" validate:"required"`
	Type         string     `json:"type" validate:"required"`
	Condition    string     `json:"condition" validate:"required"`
	Price        float64    `json:"price" validate:"gte=0"`
	Name         string     `json:"name" validate:"required"`
	Description  string     `json:"description"`
	Region       string     `json:"region"`
	City         string     `json:"city"`
	PostalCode   string     `json:"postal_code"`
	Location     string     `json:"location"`
	DepotID      *uuid.UUID `json:"depot_id"`
	Available    bool       `json:"available"`
	FreeShipping bool       `json:"free_shipping"`
}
