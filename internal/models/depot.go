package models

import (
	"time"

	"github.com/google/uuid"
)

// Depot is a physical yard holding zero or more units. It is the sole
// source of truth for coordinates; units never store their own.
type Depot struct {
	Versioned

	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (d *Depot) GetID() string { return d.ID.String() }
