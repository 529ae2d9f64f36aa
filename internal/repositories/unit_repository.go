package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/boxyard/inventory-service/internal/models"
)

/* ───────────── public interface ───────────── */

type UnitRepository interface {
	Create(ctx context.Context, u *models.Unit) error
	CreateMany(ctx context.Context, list []models.Unit) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	GetBySKU(ctx context.Context, sku string) (*models.Unit, error)
	ListByDepotID(ctx context.Context, depotID uuid.UUID) ([]*models.Unit, error)

	Update(ctx context.Context, u *models.Unit) error
	UpdateIfVersion(ctx context.Context, u *models.Unit, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Unit) error) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByDepotID(ctx context.Context, depotID uuid.UUID) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type unitRepo struct {
	*BaseVersionedRepo[*models.Unit]
	db DB
}

func NewUnitRepository(db DB) UnitRepository {
	r := &unitRepo{db: db}
	selectStmt := baseSelectUnit() + " WHERE id=$1 AND deleted_at IS NULL"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanUnit)
	return r
}

/* ---------- create ---------- */

func (r *unitRepo) Create(ctx context.Context, u *models.Unit) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO units (
			id, sku, type, condition, price, name, description,
			region, city, postal_code, location, depot_id,
			available, free_shipping,
			created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14, NOW(), NOW(), 1)
	`, u.ID, u.SKU, u.Type, u.Condition, u.Price, u.Name, u.Description,
		u.Region, u.City, u.PostalCode, u.Location, u.DepotID,
		u.Available, u.FreeShipping)
	return err
}

func (r *unitRepo) CreateMany(ctx context.Context, list []models.Unit) error {
	for i := range list {
		if err := r.Create(ctx, &list[i]); err != nil {
			return err
		}
	}
	return nil
}

/* ---------- reads ---------- */

func (r *unitRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *unitRepo) GetBySKU(ctx context.Context, sku string) (*models.Unit, error) {
	row := r.db.QueryRow(ctx, baseSelectUnit()+" WHERE sku=$1 AND deleted_at IS NULL LIMIT 1", sku)
	return scanUnit(row)
}

func (r *unitRepo) ListByDepotID(ctx context.Context, depotID uuid.UUID) ([]*models.Unit, error) {
	rows, err := r.db.Query(ctx, baseSelectUnit()+" WHERE depot_id=$1 AND deleted_at IS NULL ORDER BY name", depotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUnits(rows)
}

/* ---------- update / delete ---------- */

func (r *unitRepo) Update(ctx context.Context, u *models.Unit) error {
	_, err := r.update(ctx, u, false, 0)
	return err
}

func (r *unitRepo) UpdateIfVersion(ctx context.Context, u *models.Unit, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, u, true, expected)
}

func (r *unitRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Unit) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

// update never touches sku: it is immutable once assigned.
func (r *unitRepo) update(ctx context.Context, u *models.Unit, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
		UPDATE units
		SET type=$1, condition=$2, price=$3, name=$4, description=$5,
		    region=$6, city=$7, postal_code=$8, location=$9, depot_id=$10,
		    available=$11, free_shipping=$12, updated_at=NOW()
	`
	args := []any{
		u.Type, u.Condition, u.Price, u.Name, u.Description,
		u.Region, u.City, u.PostalCode, u.Location, u.DepotID,
		u.Available, u.FreeShipping,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$13 AND row_version=$14`
		args = append(args, u.ID, expected)
	} else {
		sql += ` WHERE id=$13`
		args = append(args, u.ID)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *unitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM units WHERE id=$1`, id)
	return err
}

func (r *unitRepo) DeleteByDepotID(ctx context.Context, depotID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM units WHERE depot_id=$1`, depotID)
	return err
}

func (r *unitRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE units SET deleted_at=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

/* ---------- internals ---------- */

func baseSelectUnit() string {
	return `
		SELECT id, sku, type, condition, price, name, description,
		region, city, postal_code, location, depot_id,
		available, free_shipping,
		created_at, updated_at, row_version
		FROM units`
}

func scanUnit(row pgx.Row) (*models.Unit, error) {
	var u models.Unit
	if err := row.Scan(
		&u.ID, &u.SKU, &u.Type, &u.Condition, &u.Price, &u.Name, &u.Description,
		&u.Region, &u.City, &u.PostalCode, &u.Location, &u.DepotID,
		&u.Available, &u.FreeShipping,
		&u.CreatedAt, &u.UpdatedAt, &u.RowVersion,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func scanUnits(rows pgx.Rows) ([]*models.Unit, error) {
	var out []*models.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
