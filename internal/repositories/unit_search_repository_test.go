package repositories

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/boxyard/inventory-service/internal/constants"
)

func TestBuildUnitQueryNoFacets(t *testing.T) {
	q := buildUnitQuery(UnitSearchFilter{})

	require.Equal(t, " WHERE u.deleted_at IS NULL", q.where)
	require.Empty(t, q.args)
	require.Empty(t, q.join)
	require.Empty(t, q.distExpr)
}

func TestBuildUnitQueryProximityAddsJoinAndDistance(t *testing.T) {
	q := buildUnitQuery(UnitSearchFilter{
		Origin:      &GeoPoint{Lat: 34.09, Lng: -118.41},
		RadiusMiles: 50,
	})

	require.Equal(t, " JOIN depots d ON d.id = u.depot_id", q.join)
	require.Contains(t, q.distExpr, "3959")
	require.Contains(t, q.distExpr, "d.latitude")
	require.Contains(t, q.where, q.distExpr+" <= $3")
	require.Equal(t, []any{34.09, -118.41, 50.0}, q.args)
}

func TestBuildUnitQueryCoordinatesWithoutRadiusIsNotProximity(t *testing.T) {
	q := buildUnitQuery(UnitSearchFilter{
		Origin: &GeoPoint{Lat: 34.09, Lng: -118.41},
	})

	require.Empty(t, q.join)
	require.Empty(t, q.distExpr)
}

func TestBuildUnitQueryTypeFacetIsPermissive(t *testing.T) {
	q := buildUnitQuery(UnitSearchFilter{Types: []string{"40HC"}})

	// Prefix and contains patterns, applied to both type and name.
	require.Contains(t, q.args, "40HC%")
	require.Contains(t, q.args, "%40HC%")
	require.Contains(t, q.where, "u.type ILIKE $1")
	require.Contains(t, q.where, "u.type ILIKE $2")
	require.Contains(t, q.where, "u.name ILIKE $1")
	require.Contains(t, q.where, "u.name ILIKE $2")
}

func TestBuildUnitQueryMultipleTypesOrTogether(t *testing.T) {
	q := buildUnitQuery(UnitSearchFilter{Types: []string{"40HC", "20DC"}})

	require.Contains(t, q.where, ") OR (")
	require.Len(t, q.args, 4)
}

func TestBuildUnitQueryRegionSentinelSkipped(t *testing.T) {
	q := buildUnitQuery(UnitSearchFilter{Region: "all"})
	require.NotContains(t, q.where, "u.region")

	q = buildUnitQuery(UnitSearchFilter{Region: "All"})
	require.NotContains(t, q.where, "u.region")

	q = buildUnitQuery(UnitSearchFilter{Region: "TX"})
	require.Contains(t, q.where, "u.region = $1")
	require.Equal(t, []any{"TX"}, q.args)
}

func TestBuildUnitQueryPostalCodePlain(t *testing.T) {
	q := buildUnitQuery(UnitSearchFilter{PostalCode: "90210"})

	require.Contains(t, q.where, "u.postal_code ILIKE $1")
	require.NotContains(t, q.where, "u.city")
	require.Equal(t, []any{"%90210%"}, q.args)
}

func TestBuildUnitQueryPostalCodeUnderProximityAlsoMatchesCityAndRegion(t *testing.T) {
	q := buildUnitQuery(UnitSearchFilter{
		PostalCode:  "90210",
		Origin:      &GeoPoint{Lat: 34.09, Lng: -118.41},
		RadiusMiles: 50,
	})

	require.Contains(t, q.where, "(u.postal_code ILIKE $4 OR u.city ILIKE $4 OR u.region ILIKE $4)")
}

func TestBuildUnitQueryFacetsCombineWithAND(t *testing.T) {
	min := 1000.0
	max := 3000.0
	depotID := uuid.New()
	q := buildUnitQuery(UnitSearchFilter{
		Types:      []string{"40HC"},
		Conditions: []string{"new", "cargo-worthy"},
		Region:     "CA",
		City:       "Long Beach",
		PriceMin:   &min,
		PriceMax:   &max,
		DepotID:    &depotID,
		Query:      "container",
	})

	require.Contains(t, q.where, "u.condition = ANY(")
	require.Contains(t, q.where, "u.price >= $")
	require.Contains(t, q.where, "u.price <= $")
	require.Contains(t, q.where, "u.depot_id = $")
	require.Contains(t, q.where, "u.location ILIKE $")

	// Every facet ANDs onto the base deleted_at predicate: 9 predicates
	// joined by 8 ANDs (inner alternatives use OR, never AND).
	require.Equal(t, 8, strings.Count(q.where, " AND "))
}

func TestOrderClauseProximityOverridesRequestedSort(t *testing.T) {
	require.Equal(t, "distance_miles ASC, u.name ASC", orderClause(constants.SortPriceAsc, true))
	require.Equal(t, "distance_miles ASC, u.name ASC", orderClause(constants.SortNewest, true))
	require.Equal(t, "distance_miles ASC, u.name ASC", orderClause("", true))
}

func TestOrderClauseWithoutProximity(t *testing.T) {
	require.Equal(t, "u.price ASC", orderClause(constants.SortPriceAsc, false))
	require.Equal(t, "u.price DESC", orderClause(constants.SortPriceDesc, false))
	require.Equal(t, "u.created_at DESC", orderClause(constants.SortNewest, false))
	require.Equal(t, "u.name ASC", orderClause(constants.SortName, false))

	// distance sort without coordinates falls back to name ascending
	require.Equal(t, "u.name ASC", orderClause(constants.SortDistance, false))
}
