package controllers

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/boxyard/inventory-service/internal/constants"
)

func TestParseSearchQueryZipLikeQueryBecomesPostalCode(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"five digit zip", "90210"},
		{"zip plus four", "90210-1234"},
		{"canadian with space", "M5V 3L9"},
		{"canadian without space", "M5V3L9"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/v1/units/search", nil)
			r.URL.RawQuery = url.Values{"q": {tc.query}}.Encode()
			q, err := parseSearchQuery(r)
			require.NoError(t, err)

			require.Equal(t, tc.query, q.PostalCode)
			require.Empty(t, q.Query)
			require.Equal(t, float64(constants.ZipQueryRadiusMiles), q.RadiusMiles)
		})
	}
}

func TestParseSearchQueryZipLikeKeepsExplicitRadius(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/units/search?q=90210&radius=25", nil)
	q, err := parseSearchQuery(r)
	require.NoError(t, err)

	require.Equal(t, "90210", q.PostalCode)
	require.Equal(t, 25.0, q.RadiusMiles)
}

func TestParseSearchQueryPlainTextStaysFreeText(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/units/search?q=40ft+high+cube", nil)
	q, err := parseSearchQuery(r)
	require.NoError(t, err)

	require.Equal(t, "40ft high cube", q.Query)
	require.Empty(t, q.PostalCode)
	require.Zero(t, q.RadiusMiles)
}

func TestParseSearchQueryExplicitPostalCodeWinsOverZipQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/units/search?q=90210&postal_code=10001", nil)
	q, err := parseSearchQuery(r)
	require.NoError(t, err)

	require.Equal(t, "10001", q.PostalCode)
	require.Equal(t, "90210", q.Query)
	require.Zero(t, q.RadiusMiles)
}

func TestParseSearchQueryFacets(t *testing.T) {
	r := httptest.NewRequest(
		"GET",
		"/api/v1/units/search?type=40HC&type=+20DC+&type=&condition=new&region=TX&city=Dallas&price_min=1500&price_max=4000",
		nil,
	)
	q, err := parseSearchQuery(r)
	require.NoError(t, err)

	require.Equal(t, []string{"40HC", "20DC"}, q.Types)
	require.Equal(t, []string{"new"}, q.Conditions)
	require.Equal(t, "TX", q.Region)
	require.Equal(t, "Dallas", q.City)
	require.Equal(t, 1500.0, *q.PriceMin)
	require.Equal(t, 4000.0, *q.PriceMax)
}

func TestParseSearchQueryDepotID(t *testing.T) {
	depotID := uuid.New()
	r := httptest.NewRequest("GET", "/api/v1/units/search?depot_id="+depotID.String(), nil)
	q, err := parseSearchQuery(r)
	require.NoError(t, err)
	require.Equal(t, depotID, *q.DepotID)

	r = httptest.NewRequest("GET", "/api/v1/units/search?depot_id=not-a-uuid", nil)
	_, err = parseSearchQuery(r)
	require.Error(t, err)
	require.Contains(t, err.Error(), "depot_id")
}

func TestParseSearchQueryCoordinates(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/units/search?lat=34.09&lng=-118.41&radius=75", nil)
	q, err := parseSearchQuery(r)
	require.NoError(t, err)

	require.Equal(t, 34.09, *q.Lat)
	require.Equal(t, -118.41, *q.Lng)
	require.Equal(t, 75.0, q.RadiusMiles)
}

func TestParseSearchQueryLatWithoutLngRejected(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/units/search?lat=34.09", nil)
	_, err := parseSearchQuery(r)
	require.Error(t, err)
	require.Contains(t, err.Error(), "lat and lng")

	r = httptest.NewRequest("GET", "/api/v1/units/search?lng=-118.41", nil)
	_, err = parseSearchQuery(r)
	require.Error(t, err)
}

func TestParseSearchQueryInvalidNumbersRejected(t *testing.T) {
	for _, raw := range []string{
		"price_min=cheap",
		"price_max=alot",
		"lat=north&lng=-118.41",
		"radius=wide",
	} {
		r := httptest.NewRequest("GET", "/api/v1/units/search?"+raw, nil)
		_, err := parseSearchQuery(r)
		require.Error(t, err, raw)
	}
}

func TestParseSearchQueryPagingDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/units/search", nil)
	q, err := parseSearchQuery(r)
	require.NoError(t, err)
	require.Equal(t, constants.DefaultPage, q.Page)
	require.Equal(t, constants.DefaultPageSize, q.Size)

	// Garbage and non-positive values fall back to the defaults.
	r = httptest.NewRequest("GET", "/api/v1/units/search?page=zero&size=-4", nil)
	q, err = parseSearchQuery(r)
	require.NoError(t, err)
	require.Equal(t, constants.DefaultPage, q.Page)
	require.Equal(t, constants.DefaultPageSize, q.Size)

	r = httptest.NewRequest("GET", "/api/v1/units/search?page=3&size=5", nil)
	q, err = parseSearchQuery(r)
	require.NoError(t, err)
	require.Equal(t, 3, q.Page)
	require.Equal(t, 5, q.Size)
}

func TestParseSearchQuerySortWhitelist(t *testing.T) {
	for param, want := range map[string]string{
		"name":       constants.SortName,
		"price_asc":  constants.SortPriceAsc,
		"price_desc": constants.SortPriceDesc,
		"newest":     constants.SortNewest,
		"distance":   constants.SortDistance,
		"sneaky":     constants.SortName,
		"":           constants.SortName,
	} {
		r := httptest.NewRequest("GET", "/api/v1/units/search?sort="+param, nil)
		q, err := parseSearchQuery(r)
		require.NoError(t, err)
		require.Equal(t, want, q.SortBy, "sort=%s", param)
	}
}
