package models

import (
	"time"

	"github.com/google/uuid"
)

// Unit represents one leasable or purchasable container anchored to a depot.
// Region/city/postal_code are denormalized display fields; proximity search
// always goes through the owning depot's coordinates.
type Unit struct {
	Versioned

	ID          uuid.UUID  `json:"id"`
	SKU         string     `json:"sku"` // globally unique, immutable once assigned
	Type        string     `json:"type"`
	Condition   string     `json:"condition"`
	Price       float64    `json:"price"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Region      string     `json:"region"`
	City        string     `json:"city"`
	PostalCode  string     `json:"postal_code"`
	Location    string     `json:"location"`
	DepotID     *uuid.UUID `json:"depot_id"`
	Available   bool       `json:"available"`
	FreeShipping bool      `json:"free_shipping"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (u *Unit) GetID() string { return u.ID.String() }
