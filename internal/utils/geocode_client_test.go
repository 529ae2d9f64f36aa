package utils

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/boxyard/inventory-service/internal/constants"
)

func TestResolvePostalCodeNoAPIKey(t *testing.T) {
	client := NewGeocodeClient("")

	result, ok := client.ResolvePostalCode(context.Background(), "90210")
	require.True(t, ok)
	require.True(t, result.UsingFallback)
	require.Equal(t, constants.FallbackLatitude, result.Latitude)
	require.Equal(t, constants.FallbackLongitude, result.Longitude)

	// Fallback must be deterministic across calls.
	again, ok := client.ResolvePostalCode(context.Background(), "90210")
	require.True(t, ok)
	require.Equal(t, result, again)
}

func TestResolvePostalCodeProviderSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "90210", r.URL.Query().Get("address"))
		fmt.Fprint(w, `{
			"status": "OK",
			"results": [{"geometry": {"location": {"lat": 34.0901, "lng": -118.4065}}}]
		}`)
	}))
	defer srv.Close()

	client := NewGeocodeClientWithBaseURL("test-key", srv.URL)

	result, ok := client.ResolvePostalCode(context.Background(), "90210")
	require.True(t, ok)
	require.False(t, result.UsingFallback)
	require.InDelta(t, 34.0901, result.Latitude, 0.0001)
	require.InDelta(t, -118.4065, result.Longitude, 0.0001)
}

func TestResolvePostalCodeZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "ZERO_RESULTS", "results": []}`)
	}))
	defer srv.Close()

	client := NewGeocodeClientWithBaseURL("test-key", srv.URL)

	_, ok := client.ResolvePostalCode(context.Background(), "00000")
	require.False(t, ok)
}

func TestResolvePostalCodeProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewGeocodeClientWithBaseURL("test-key", srv.URL)

	result, ok := client.ResolvePostalCode(context.Background(), "90210")
	require.True(t, ok)
	require.True(t, result.UsingFallback)
	require.Equal(t, constants.FallbackLatitude, result.Latitude)
}

func TestResolvePostalCodeCachesResults(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, `{
			"status": "OK",
			"results": [{"geometry": {"location": {"lat": 34.0901, "lng": -118.4065}}}]
		}`)
	}))
	defer srv.Close()

	client := NewGeocodeClientWithBaseURL("test-key", srv.URL)

	_, ok := client.ResolvePostalCode(context.Background(), "90210")
	require.True(t, ok)
	_, ok = client.ResolvePostalCode(context.Background(), "90210")
	require.True(t, ok)
	require.Equal(t, 1, hits)
}

func TestNormalizeRadiusMiles(t *testing.T) {
	require.Equal(t, 50.0, NormalizeRadiusMiles(0, 50))
	require.Equal(t, 50.0, NormalizeRadiusMiles(-10, 50))
	require.Equal(t, 100.0, NormalizeRadiusMiles(0, 100))
	require.Equal(t, 75.0, NormalizeRadiusMiles(75, 50))
	require.Equal(t, float64(constants.MaxRadiusMiles), NormalizeRadiusMiles(5200, 50))
}
