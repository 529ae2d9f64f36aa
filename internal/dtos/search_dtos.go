package dtos

import (
	"github.com/google/uuid"
)

/*
SearchUnitsQuery is the "request DTO" for GET /api/v1/units/search, built by
the controller from raw query params. Lat/Lng are pointers so "absent" is
distinguishable from the zero coordinate.
*/
type SearchUnitsQuery struct {
	Types      []string
	Conditions []string
	Region     string
	City       string
	PostalCode string
	PriceMin   *float64
	PriceMax   *float64
	DepotID    *uuid.UUID
	Query      string

	Lat         *float64
	Lng         *float64
	RadiusMiles float64

	SortBy string
	Page   int
	Size   int
}

/*
UnitDTO is the canonical unit shape returned by search and fetch endpoints.
DistanceMiles is set only when the search was a proximity search; depot join
columns never appear here.
*/
type UnitDTO struct {
	ID           uuid.UUID  `json:"id"`
	SKU          string     `json:"sku"`
	Type         string     `json:"type"`
	Condition    string     `json:"condition"`
	Price        float64    `json:"price"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Region       string     `json:"region"`
	City         string     `json:"city"`
	PostalCode   string     `json:"postal_code"`
	Location     string     `json:"location"`
	DepotID      *uuid.UUID `json:"depot_id"`
	Available    bool       `json:"available"`
	FreeShipping bool       `json:"free_shipping"`
	CreatedAt    string     `json:"created_at"`
	UpdatedAt    string     `json:"updated_at"`

	DistanceMiles *float64 `json:"distance_miles,omitempty"`
}

type SearchUnitsResponse struct {
	Results      []UnitDTO `json:"results"`
	Page         int       `json:"page"`
	Size         int       `json:"size"`
	TotalResults int       `json:"total_results"`
	TotalPages   int       `json:"total_pages"`
}
