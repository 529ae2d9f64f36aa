package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	gocache "github.com/patrickmn/go-cache"

	"github.com/boxyard/inventory-service/internal/constants"
)

// GeocodeResult is what postal-code resolution hands back. When the provider
// is unconfigured or unreachable we return the fixed fallback point with
// UsingFallback set, trading precision for availability.
type GeocodeResult struct {
	Latitude      float64
	Longitude     float64
	UsingFallback bool
}

// Geocoder resolves a postal code to coordinates. The boolean is false only
// when the provider definitively reported "no such place"; every transport
// or configuration failure degrades to the fallback coordinate instead.
type Geocoder interface {
	ResolvePostalCode(ctx context.Context, postalCode string) (GeocodeResult, bool)
}

/*──────────── Google Geocoding REST client ────────────*/

const defaultGeocodeBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

type GeocodeClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *gocache.Cache
}

func NewGeocodeClient(apiKey string) *GeocodeClient {
	return &GeocodeClient{
		apiKey:     apiKey,
		baseURL:    defaultGeocodeBaseURL,
		httpClient: &http.Client{Timeout: constants.GeocodeTimeout},
		cache:      gocache.New(constants.GeocodeCacheTTL, 2*constants.GeocodeCacheTTL),
	}
}

// NewGeocodeClientWithBaseURL exists for tests pointing at a local server.
func NewGeocodeClientWithBaseURL(apiKey, baseURL string) *GeocodeClient {
	c := NewGeocodeClient(apiKey)
	c.baseURL = baseURL
	return c
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func fallbackResult() GeocodeResult {
	return GeocodeResult{
		Latitude:      constants.FallbackLatitude,
		Longitude:     constants.FallbackLongitude,
		UsingFallback: true,
	}
}

func (c *GeocodeClient) ResolvePostalCode(ctx context.Context, postalCode string) (GeocodeResult, bool) {
	if c.apiKey == "" {
		Logger.Debug("[Geocoder] No API key configured, using fallback coordinate")
		return fallbackResult(), true
	}

	if cached, found := c.cache.Get(postalCode); found {
		return cached.(GeocodeResult), true
	}

	params := url.Values{}
	params.Add("address", postalCode)
	params.Add("key", c.apiKey)
	reqURL := c.baseURL + "?" + params.Encode()

	ctx, cancel := context.WithTimeout(ctx, constants.GeocodeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		Logger.WithError(err).Warn("[Geocoder] Failed to build request, using fallback coordinate")
		return fallbackResult(), true
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		Logger.WithError(err).Warn("[Geocoder] Provider call failed, using fallback coordinate")
		return fallbackResult(), true
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		Logger.WithField("status", resp.StatusCode).Warn("[Geocoder] Provider returned non-200, using fallback coordinate")
		return fallbackResult(), true
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		Logger.WithError(err).Warn("[Geocoder] Failed to parse provider response, using fallback coordinate")
		return fallbackResult(), true
	}

	if body.Status == "ZERO_RESULTS" || len(body.Results) == 0 {
		// The provider answered and knows nothing by this code.
		return GeocodeResult{}, false
	}
	if body.Status != "OK" {
		Logger.WithField("provider_status", body.Status).Warn("[Geocoder] Provider error status, using fallback coordinate")
		return fallbackResult(), true
	}

	loc := body.Results[0].Geometry.Location
	result := GeocodeResult{Latitude: loc.Lat, Longitude: loc.Lng}
	c.cache.Set(postalCode, result, gocache.DefaultExpiration)
	Logger.Debugf("[Geocoder] Resolved %q to %.6f,%.6f", postalCode, loc.Lat, loc.Lng)
	return result, true
}

// NormalizeRadiusMiles corrects caller-supplied radii: non-positive values
// get the default, anything above the cap is clamped.
func NormalizeRadiusMiles(radius float64, defaultMiles float64) float64 {
	if radius <= 0 {
		return defaultMiles
	}
	if radius > constants.MaxRadiusMiles {
		return constants.MaxRadiusMiles
	}
	return radius
}
