package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/boxyard/inventory-service/internal/constants"
	"github.com/boxyard/inventory-service/internal/models"
)

/* ───────────── public interface ───────────── */

// GeoPoint is a search origin.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// UnitSearchFilter is the predicate set for one search. Absent/empty facets
// are omitted from the generated SQL entirely. When Origin is non-nil and
// RadiusMiles is positive, the query joins depots and constrains the
// great-circle distance from Origin.
type UnitSearchFilter struct {
	Types      []string
	Conditions []string
	Region     string
	City       string
	PostalCode string
	PriceMin   *float64
	PriceMax   *float64
	DepotID    *uuid.UUID
	Query      string

	Origin      *GeoPoint
	RadiusMiles float64
}

// Proximity reports whether this filter constrains distance.
func (f UnitSearchFilter) Proximity() bool {
	return f.Origin != nil && f.RadiusMiles > 0
}

// UnitWithDistance is a unit row plus the computed distance column when the
// query joined depots. Nothing else from the join leaks out.
type UnitWithDistance struct {
	models.Unit
	DistanceMiles *float64
}

type UnitSearchRepository interface {
	Count(ctx context.Context, f UnitSearchFilter) (int, error)
	Search(ctx context.Context, f UnitSearchFilter, orderBy string, limit, offset int) ([]*UnitWithDistance, error)

	// NearestDepotID returns the depot closest to origin among depots that
	// hold at least one live unit within radiusMiles, or nil when none do.
	NearestDepotID(ctx context.Context, origin GeoPoint, radiusMiles float64) (*uuid.UUID, error)
}

/* ───────────── implementation ───────────── */

type unitSearchRepo struct {
	db DB
}

func NewUnitSearchRepository(db DB) UnitSearchRepository {
	return &unitSearchRepo{db: db}
}

func (r *unitSearchRepo) Count(ctx context.Context, f UnitSearchFilter) (int, error) {
	q := buildUnitQuery(f)
	sql := `SELECT COUNT(*) FROM units u` + q.join + q.where
	var n int
	if err := r.db.QueryRow(ctx, sql, q.args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *unitSearchRepo) Search(
	ctx context.Context,
	f UnitSearchFilter,
	orderBy string,
	limit, offset int,
) ([]*UnitWithDistance, error) {
	q := buildUnitQuery(f)

	cols := unitColumns()
	if q.distExpr != "" {
		cols += ", " + q.distExpr + " AS distance_miles"
	}

	limIdx := len(q.args) + 1
	offIdx := len(q.args) + 2
	args := append(q.args, limit, offset)

	sql := fmt.Sprintf(
		"SELECT %s FROM units u%s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		cols, q.join, q.where, orderClause(orderBy, q.distExpr != ""), limIdx, offIdx,
	)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*UnitWithDistance
	for rows.Next() {
		var u UnitWithDistance
		dest := []any{
			&u.ID, &u.SKU, &u.Type, &u.Condition, &u.Price, &u.Name, &u.Description,
			&u.Region, &u.City, &u.PostalCode, &u.Location, &u.DepotID,
			&u.Available, &u.FreeShipping,
			&u.CreatedAt, &u.UpdatedAt, &u.RowVersion,
		}
		if q.distExpr != "" {
			var dist float64
			if err := rows.Scan(append(dest, &dist)...); err != nil {
				return nil, err
			}
			u.DistanceMiles = &dist
		} else {
			if err := rows.Scan(dest...); err != nil {
				return nil, err
			}
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

func (r *unitSearchRepo) NearestDepotID(
	ctx context.Context,
	origin GeoPoint,
	radiusMiles float64,
) (*uuid.UUID, error) {
	dist := haversineMilesExpr(1, 2)
	sql := fmt.Sprintf(`
		SELECT u.depot_id, MIN(%s) AS dist
		FROM units u
		JOIN depots d ON d.id = u.depot_id
		WHERE u.deleted_at IS NULL AND %s <= $3
		GROUP BY u.depot_id
		ORDER BY dist
		LIMIT 1`, dist, dist)

	var depotID uuid.UUID
	var minDist float64
	rows, err := r.db.Query(ctx, sql, origin.Lat, origin.Lng, radiusMiles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	if err := rows.Scan(&depotID, &minDist); err != nil {
		return nil, err
	}
	return &depotID, nil
}

/* ───────────── query building ───────────── */

type builtQuery struct {
	join     string // " JOIN depots d ..." or ""
	where    string // " WHERE ..." (never empty: deleted_at check)
	distExpr string // Haversine SQL when proximity, else ""
	args     []any
}

// haversineMilesExpr is the SQL twin of utils.DistanceMiles: great-circle
// distance in miles between the search origin ($latIdx,$lngIdx) and the
// joined depot row. Usable in both WHERE and the projected column list.
func haversineMilesExpr(latIdx, lngIdx int) string {
	return fmt.Sprintf(
		"(2 * %d * asin(sqrt("+
			"power(sin(radians((d.latitude - $%d) / 2)), 2) + "+
			"cos(radians($%d)) * cos(radians(d.latitude)) * "+
			"power(sin(radians((d.longitude - $%d) / 2)), 2))))",
		constants.EarthRadiusMiles, latIdx, latIdx, lngIdx,
	)
}

// buildUnitQuery turns a filter into join/where fragments plus positional
// args. Facets AND together; multiple values inside one facet OR together.
func buildUnitQuery(f UnitSearchFilter) builtQuery {
	var q builtQuery
	where := []string{"u.deleted_at IS NULL"}

	add := func(v any) int {
		q.args = append(q.args, v)
		return len(q.args)
	}

	if f.Proximity() {
		latIdx := add(f.Origin.Lat)
		lngIdx := add(f.Origin.Lng)
		q.distExpr = haversineMilesExpr(latIdx, lngIdx)
		q.join = " JOIN depots d ON d.id = u.depot_id"
		where = append(where, fmt.Sprintf("%s <= $%d", q.distExpr, add(f.RadiusMiles)))
	}

	if len(f.Types) > 0 {
		var ors []string
		for _, v := range f.Types {
			prefIdx := add(v + "%")
			contIdx := add("%" + v + "%")
			// Deliberately loose: a requested "40HC" should match a unit
			// typed "40HC-refurb" or merely named after the type code.
			ors = append(ors, fmt.Sprintf(
				"(u.type ILIKE $%d OR u.type ILIKE $%d OR u.name ILIKE $%d OR u.name ILIKE $%d)",
				prefIdx, contIdx, prefIdx, contIdx,
			))
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	if len(f.Conditions) > 0 {
		where = append(where, fmt.Sprintf("u.condition = ANY($%d)", add(f.Conditions)))
	}

	if f.Region != "" && !strings.EqualFold(f.Region, constants.RegionAll) {
		where = append(where, fmt.Sprintf("u.region = $%d", add(f.Region)))
	}

	if f.City != "" {
		where = append(where, fmt.Sprintf("u.city ILIKE $%d", add("%"+f.City+"%")))
	}

	if f.PostalCode != "" {
		idx := add("%" + f.PostalCode + "%")
		if f.Proximity() {
			// Postal codes in the source data are inconsistently formatted,
			// so a proximity search also accepts the code appearing inside
			// the city or region display fields.
			where = append(where, fmt.Sprintf(
				"(u.postal_code ILIKE $%d OR u.city ILIKE $%d OR u.region ILIKE $%d)",
				idx, idx, idx,
			))
		} else {
			where = append(where, fmt.Sprintf("u.postal_code ILIKE $%d", idx))
		}
	}

	if f.PriceMin != nil {
		where = append(where, fmt.Sprintf("u.price >= $%d", add(*f.PriceMin)))
	}
	if f.PriceMax != nil {
		where = append(where, fmt.Sprintf("u.price <= $%d", add(*f.PriceMax)))
	}

	if f.DepotID != nil {
		where = append(where, fmt.Sprintf("u.depot_id = $%d", add(*f.DepotID)))
	}

	if f.Query != "" {
		idx := add("%" + f.Query + "%")
		where = append(where, fmt.Sprintf(
			"(u.name ILIKE $%d OR u.location ILIKE $%d OR u.type ILIKE $%d OR u.condition ILIKE $%d)",
			idx, idx, idx, idx,
		))
	}

	q.where = " WHERE " + strings.Join(where, " AND ")
	return q
}

// orderClause resolves the sort key. Proximity always wins: results of a
// radius search come back nearest-first no matter what was requested.
func orderClause(orderBy string, proximity bool) string {
	if proximity {
		return "distance_miles ASC, u.name ASC"
	}
	switch orderBy {
	case constants.SortPriceAsc:
		return "u.price ASC"
	case constants.SortPriceDesc:
		return "u.price DESC"
	case constants.SortNewest:
		return "u.created_at DESC"
	default:
		// SortDistance without proximity coordinates falls through here too.
		return "u.name ASC"
	}
}

func unitColumns() string {
	return "u.id, u.sku, u.type, u.condition, u.price, u.name, u.description, " +
		"u.region, u.city, u.postal_code, u.location, u.depot_id, " +
		"u.available, u.free_shipping, " +
		"u.created_at, u.updated_at, u.row_version"
}
