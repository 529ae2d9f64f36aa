package constants

import (
	"time"
)

// Proximity search tuning
const (
	DefaultRadiusMiles = 50   // explicit postal-code searches
	ZipQueryRadiusMiles = 100 // free-text query auto-detected as a zip code
	MaxRadiusMiles     = 1000 // anything above is clamped
	RelaxedRadiusMiles = 5000 // "whole dataset" radius for the zero-result fallback
	EarthRadiusMiles   = 3959
)

// Offline geocoding fallback: geographic center of the contiguous US.
// Fixed on purpose so fallback searches are reproducible.
const (
	FallbackLatitude  = 39.8283
	FallbackLongitude = -98.5795
)

// Pagination
const (
	DefaultPage     = 1
	DefaultPageSize = 20
)

// Geocoder client
const (
	GeocodeTimeout  = 3 * time.Second
	GeocodeCacheTTL = 1 * time.Hour
)

// Sort keys accepted by the search endpoint.
const (
	SortName      = "name"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
	SortDistance  = "distance"
)

// Region facet sentinel meaning "no region filter".
const RegionAll = "all"
