package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/boxyard/inventory-service/internal/constants"
	"github.com/boxyard/inventory-service/internal/dtos"
	"github.com/boxyard/inventory-service/internal/services"
	"github.com/boxyard/inventory-service/internal/utils"
)

type SearchController struct {
	searchService *services.SearchService
}

func NewSearchController(ss *services.SearchService) *SearchController {
	return &SearchController{searchService: ss}
}

// zipLikeRegex matches free-text queries that are really postal codes:
// 5-digit or 5+4 US ZIPs, or Canadian A1A 1A1 (space optional).
var zipLikeRegex = regexp.MustCompile(`^(\d{5}(-\d{4})?|[A-Za-z]\d[A-Za-z] ?\d[A-Za-z]\d)$`)

// ----------------------------------------------------------------
// GET /api/v1/units/search
// ----------------------------------------------------------------
func (c *SearchController) SearchUnitsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q, err := parseSearchQuery(r)
	if err != nil {
		utils.RespondErrorWithCode(
			w,
			http.StatusBadRequest,
			utils.ErrCodeInvalidPayload,
			err.Error(),
			nil,
			nil,
		)
		return
	}

	resp, svcErr := c.searchService.Search(ctx, q)
	if svcErr != nil {
		if errors.Is(svcErr, utils.ErrSearchBackendUnavailable) {
			utils.RespondErrorWithCode(
				w,
				http.StatusServiceUnavailable,
				utils.ErrCodeSearchBackendUnavailable,
				"Search is temporarily unavailable",
				nil,
				svcErr,
			)
			return
		}
		utils.Logger.WithError(svcErr).Error("Failed to search units")
		utils.RespondErrorWithCode(
			w,
			http.StatusInternalServerError,
			utils.ErrCodeInternal,
			"Failed to search units",
			nil,
			svcErr,
		)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// parseSearchQuery turns raw query params into a SearchUnitsQuery.
// A free-text q that looks like a zip code is reinterpreted as a
// postal-code facet with a wider default radius than an explicitly
// supplied postal code.
// ----------------------------------------------------------------
func parseSearchQuery(r *http.Request) (dtos.SearchUnitsQuery, error) {
	params := r.URL.Query()
	q := dtos.SearchUnitsQuery{
		Types:      cleanValues(params["type"]),
		Conditions: cleanValues(params["condition"]),
		Region:     strings.TrimSpace(params.Get("region")),
		City:       strings.TrimSpace(params.Get("city")),
		PostalCode: strings.TrimSpace(params.Get("postal_code")),
		Query:      strings.TrimSpace(params.Get("q")),
	}

	if v := strings.TrimSpace(params.Get("depot_id")); v != "" {
		depotID, err := uuid.Parse(v)
		if err != nil {
			return dtos.SearchUnitsQuery{}, fmt.Errorf("invalid depot_id param: %w", err)
		}
		q.DepotID = &depotID
	}

	var err error
	if q.PriceMin, err = parseOptionalFloat(params.Get("price_min"), "price_min"); err != nil {
		return dtos.SearchUnitsQuery{}, err
	}
	if q.PriceMax, err = parseOptionalFloat(params.Get("price_max"), "price_max"); err != nil {
		return dtos.SearchUnitsQuery{}, err
	}

	latStr := params.Get("lat")
	lngStr := params.Get("lng")
	if (latStr == "") != (lngStr == "") {
		return dtos.SearchUnitsQuery{}, fmt.Errorf("lat and lng must be supplied together")
	}
	if latStr != "" {
		if q.Lat, err = parseOptionalFloat(latStr, "lat"); err != nil {
			return dtos.SearchUnitsQuery{}, err
		}
		if q.Lng, err = parseOptionalFloat(lngStr, "lng"); err != nil {
			return dtos.SearchUnitsQuery{}, err
		}
	}

	if v := params.Get("radius"); v != "" {
		radius, rErr := strconv.ParseFloat(v, 64)
		if rErr != nil {
			return dtos.SearchUnitsQuery{}, fmt.Errorf("invalid radius param: %w", rErr)
		}
		q.RadiusMiles = radius
	}

	// Free-text that is really a zip code becomes a postal-code proximity
	// search, with a wider default radius than an explicit postal_code.
	if q.PostalCode == "" && q.Query != "" && zipLikeRegex.MatchString(q.Query) {
		q.PostalCode = q.Query
		q.Query = ""
		if q.RadiusMiles <= 0 {
			q.RadiusMiles = constants.ZipQueryRadiusMiles
		}
	}

	pageStr := params.Get("page")
	if pageStr == "" {
		pageStr = "1"
	}
	sizeStr := params.Get("size")
	if sizeStr == "" {
		sizeStr = strconv.Itoa(constants.DefaultPageSize)
	}
	page, e1 := strconv.Atoi(pageStr)
	if e1 != nil || page < 1 {
		page = constants.DefaultPage
	}
	size, e2 := strconv.Atoi(sizeStr)
	if e2 != nil || size < 1 {
		size = constants.DefaultPageSize
	}
	q.Page = page
	q.Size = size

	switch sort := params.Get("sort"); sort {
	case constants.SortName, constants.SortPriceAsc, constants.SortPriceDesc,
		constants.SortNewest, constants.SortDistance:
		q.SortBy = sort
	default:
		q.SortBy = constants.SortName
	}

	return q, nil
}

func parseOptionalFloat(v, name string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s param: %w", name, err)
	}
	return &f, nil
}

func cleanValues(values []string) []string {
	var out []string
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
