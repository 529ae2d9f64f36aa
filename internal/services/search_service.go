package services

import (
	"context"
	"fmt"
	"time"

	"github.com/boxyard/inventory-service/internal/constants"
	"github.com/boxyard/inventory-service/internal/dtos"
	"github.com/boxyard/inventory-service/internal/repositories"
	"github.com/boxyard/inventory-service/internal/utils"
)

/*
SearchService resolves faceted, geospatially-aware unit searches. It is
stateless: every call stands alone, so any number of searches may run
concurrently against the same instance.
*/
type SearchService struct {
	searchRepo repositories.UnitSearchRepository
	geocoder   utils.Geocoder
}

func NewSearchService(
	searchRepo repositories.UnitSearchRepository,
	geocoder utils.Geocoder,
) *SearchService {
	return &SearchService{
		searchRepo: searchRepo,
		geocoder:   geocoder,
	}
}

/*
Search runs the two-phase resolution protocol:

 1. strict query with every requested facet (plus the distance predicate
    when coordinates and a radius are present);
 2. if — and only if — a proximity search matched nothing, retry with the
    distance predicate alone at a much wider radius and, when that finds
    anything, narrow to every unit at the single nearest depot.

The fallback is all-or-nothing per depot: there are no intermediate
relaxation levels between "strict" and "nearest depot, facets dropped".
A page at the nearest depot beats an empty page.
*/
func (s *SearchService) Search(ctx context.Context, q dtos.SearchUnitsQuery) (*dtos.SearchUnitsResponse, error) {
	page := q.Page
	if page < 1 {
		page = constants.DefaultPage
	}
	size := q.Size
	if size < 1 {
		size = constants.DefaultPageSize
	}

	filter := s.buildFilter(ctx, q)

	totalCount, err := s.searchRepo.Count(ctx, filter)
	if err != nil {
		return nil, backendErr("count units", err)
	}

	if filter.Proximity() && totalCount == 0 {
		relaxed, relaxErr := s.relaxToNearestDepot(ctx, *filter.Origin)
		if relaxErr != nil {
			return nil, relaxErr
		}
		if relaxed == nil {
			// Nothing anywhere within the relaxed radius: a legitimate
			// empty result, not an error.
			return emptySearchResponse(page, size), nil
		}
		filter = *relaxed
		totalCount, err = s.searchRepo.Count(ctx, filter)
		if err != nil {
			return nil, backendErr("count units at nearest depot", err)
		}
	}

	if totalCount == 0 {
		return emptySearchResponse(page, size), nil
	}

	offset := (page - 1) * size
	rows, err := s.searchRepo.Search(ctx, filter, q.SortBy, size, offset)
	if err != nil {
		return nil, backendErr("fetch units", err)
	}

	results := make([]dtos.UnitDTO, 0, len(rows))
	for _, row := range rows {
		results = append(results, toUnitDTO(row))
	}

	return &dtos.SearchUnitsResponse{
		Results:      results,
		Page:         page,
		Size:         size,
		TotalResults: totalCount,
		TotalPages:   (totalCount + size - 1) / size,
	}, nil
}

// buildFilter maps the request onto a predicate set and resolves the search
// origin. Explicit coordinates win; otherwise a postal-code facet is
// geocoded, degrading to the offline fallback point rather than failing the
// whole search. A definitive "no such place" answer simply leaves the
// search non-proximity, with the postal code still applied as a substring
// facet.
func (s *SearchService) buildFilter(ctx context.Context, q dtos.SearchUnitsQuery) repositories.UnitSearchFilter {
	filter := repositories.UnitSearchFilter{
		Types:      q.Types,
		Conditions: q.Conditions,
		Region:     q.Region,
		City:       q.City,
		PostalCode: q.PostalCode,
		PriceMin:   q.PriceMin,
		PriceMax:   q.PriceMax,
		DepotID:    q.DepotID,
		Query:      q.Query,
	}

	switch {
	case q.Lat != nil && q.Lng != nil:
		filter.Origin = &repositories.GeoPoint{Lat: *q.Lat, Lng: *q.Lng}
		filter.RadiusMiles = utils.NormalizeRadiusMiles(q.RadiusMiles, constants.DefaultRadiusMiles)
	case q.PostalCode != "":
		result, ok := s.geocoder.ResolvePostalCode(ctx, q.PostalCode)
		if !ok {
			break
		}
		if result.UsingFallback {
			utils.Logger.WithField("postal_code", q.PostalCode).
				Info("Geocoding unavailable, searching around fallback coordinate")
		}
		filter.Origin = &repositories.GeoPoint{Lat: result.Latitude, Lng: result.Longitude}
		filter.RadiusMiles = utils.NormalizeRadiusMiles(q.RadiusMiles, constants.DefaultRadiusMiles)
	}

	return filter
}

// relaxToNearestDepot implements the zero-result fallback. It returns nil
// when no unit with a resolvable depot exists within the relaxed radius.
func (s *SearchService) relaxToNearestDepot(
	ctx context.Context,
	origin repositories.GeoPoint,
) (*repositories.UnitSearchFilter, error) {
	relaxedCount, err := s.searchRepo.Count(ctx, repositories.UnitSearchFilter{
		Origin:      &origin,
		RadiusMiles: constants.RelaxedRadiusMiles,
	})
	if err != nil {
		return nil, backendErr("relaxed count", err)
	}
	if relaxedCount == 0 {
		return nil, nil
	}

	nearestID, err := s.searchRepo.NearestDepotID(ctx, origin, constants.RelaxedRadiusMiles)
	if err != nil {
		return nil, backendErr("nearest depot lookup", err)
	}
	if nearestID == nil {
		return nil, nil
	}

	utils.Logger.WithField("depot_id", nearestID.String()).
		Debug("Strict proximity search empty, falling back to nearest depot")

	// Every original facet is dropped on purpose: the fallback page shows
	// the full stock of the nearest depot.
	return &repositories.UnitSearchFilter{
		DepotID:     nearestID,
		Origin:      &origin,
		RadiusMiles: constants.RelaxedRadiusMiles,
	}, nil
}

// toUnitDTO projects a search row onto the public unit shape. The distance
// column survives only as the optional DistanceMiles; depot join columns
// never leave the repository.
func toUnitDTO(row *repositories.UnitWithDistance) dtos.UnitDTO {
	return dtos.UnitDTO{
		ID:            row.ID,
		SKU:           row.SKU,
		Type:          row.Type,
		Condition:     row.Condition,
		Price:         row.Price,
		Name:          row.Name,
		Description:   row.Description,
		Region:        row.Region,
		City:          row.City,
		PostalCode:    row.PostalCode,
		Location:      row.Location,
		DepotID:       row.DepotID,
		Available:     row.Available,
		FreeShipping:  row.FreeShipping,
		CreatedAt:     row.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     row.UpdatedAt.Format(time.RFC3339),
		DistanceMiles: row.DistanceMiles,
	}
}

func emptySearchResponse(page, size int) *dtos.SearchUnitsResponse {
	return &dtos.SearchUnitsResponse{
		Results:      []dtos.UnitDTO{},
		Page:         page,
		Size:         size,
		TotalResults: 0,
		TotalPages:   0,
	}
}

func backendErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", utils.ErrSearchBackendUnavailable, op, err)
}
