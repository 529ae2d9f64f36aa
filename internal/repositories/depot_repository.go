package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/boxyard/inventory-service/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type DepotRepository interface {
	Create(ctx context.Context, d *models.Depot) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Depot, error)
	GetByName(ctx context.Context, name string) (*models.Depot, error)
	ListAll(ctx context.Context) ([]*models.Depot, error)

	Update(ctx context.Context, d *models.Depot) error
	UpdateIfVersion(ctx context.Context, d *models.Depot, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Depot) error) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type depotRepo struct {
	*BaseVersionedRepo[*models.Depot]
	db DB
}

func NewDepotRepository(db DB) DepotRepository {
	r := &depotRepo{db: db}
	selectStmt := baseSelectDepot() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanDepot)
	return r
}

func (r *depotRepo) Create(ctx context.Context, d *models.Depot) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO depots (
            id, name, address, city, state, postal_code, country,
            latitude, longitude,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9, NOW(), NOW(), 1)
    `,
		d.ID,
		d.Name,
		d.Address,
		d.City,
		d.State,
		d.PostalCode,
		d.Country,
		d.Latitude,
		d.Longitude,
	)
	return err
}

func (r *depotRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Depot, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *depotRepo) GetByName(ctx context.Context, name string) (*models.Depot, error) {
	row := r.db.QueryRow(ctx, baseSelectDepot()+" WHERE name=$1 LIMIT 1", name)
	return scanDepot(row)
}

func (r *depotRepo) ListAll(ctx context.Context) ([]*models.Depot, error) {
	rows, err := r.db.Query(ctx, baseSelectDepot()+" ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Depot
	for rows.Next() {
		d, err := scanDepot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *depotRepo) Update(ctx context.Context, d *models.Depot) error {
	_, err := r.update(ctx, d, false, 0)
	return err
}

func (r *depotRepo) UpdateIfVersion(ctx context.Context, d *models.Depot, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, d, true, expected)
}

func (r *depotRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Depot) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *depotRepo) update(ctx context.Context, d *models.Depot, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
        UPDATE depots SET
            name=$1, address=$2, city=$3, state=$4, postal_code=$5,
            country=$6, latitude=$7, longitude=$8, updated_at=NOW()
    `
	args := []any{
		d.Name, d.Address, d.City, d.State, d.PostalCode,
		d.Country, d.Latitude, d.Longitude,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$9 AND row_version=$10`
		args = append(args, d.ID, expected)
	} else {
		sql += ` WHERE id=$9`
		args = append(args, d.ID)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *depotRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM depots WHERE id=$1`, id)
	return err
}

/* ---------- internals ---------- */

func baseSelectDepot() string {
	return `
		SELECT id, name, address, city, state, postal_code, country,
		latitude, longitude,
		created_at, updated_at, row_version
		FROM depots`
}

func scanDepot(row pgx.Row) (*models.Depot, error) {
	var d models.Depot
	if err := row.Scan(
		&d.ID, &d.Name, &d.Address, &d.City, &d.State, &d.PostalCode, &d.Country,
		&d.Latitude, &d.Longitude,
		&d.CreatedAt, &d.UpdatedAt, &d.RowVersion,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}
