package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"gropower-backend/internal/db"
	"gropower-backend/internal/domain"
)

type ProductRepository struct {
	DB *db.Postgres
}

const productColumns = `id, type, litre, price, discount, description, image, status, created_at, updated_at`

// List returns the catalog. Visitors only see active products; the admin
// view passes includeInactive.
func (r ProductRepository) List(ctx context.Context, includeInactive bool) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE deleted_at IS NULL AND status=$1
		ORDER BY id ASC
	`
	args := []any{domain.ProductActive}
	if includeInactive {
		query = `
			SELECT ` + productColumns + `
			FROM products
			WHERE deleted_at IS NULL
			ORDER BY id ASC
		`
		args = nil
	}

	rows, err := r.DB.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

func (r ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id=$1 AND deleted_at IS NULL
	`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r ProductRepository) Save(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.Status == "" {
		p.Status = domain.ProductActive
	}
	var row pgx.Row
	if p.ID == 0 {
		row = r.DB.Pool.QueryRow(ctx, `
			INSERT INTO products (type, litre, price, discount, description, image, status, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7, now(), now())
			RETURNING `+productColumns+`
		`, p.Type, p.Litre, p.Price.Amount, p.Discount, p.Description, p.Image, p.Status)
	} else {
		row = r.DB.Pool.QueryRow(ctx, `
			UPDATE products
			SET type=$1,
				litre=$2,
				price=$3,
				discount=$4,
				description=$5,
				image=$6,
				status=$7,
				updated_at=now()
			WHERE id=$8 AND deleted_at IS NULL
			RETURNING `+productColumns+`
		`, p.Type, p.Litre, p.Price.Amount, p.Discount, p.Description, p.Image, p.Status, p.ID)
	}
	saved, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return saved, nil
}

func (r ProductRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Pool.Exec(ctx, `
		UPDATE products SET deleted_at=now() WHERE id=$1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row interface {
	Scan(dest ...any) error
}) (*domain.Product, error) {
	var (
		p      domain.Product
		status string
	)
	if err := row.Scan(
		&p.ID,
		&p.Type,
		&p.Litre,
		&p.Price.Amount,
		&p.Discount,
		&p.Description,
		&p.Image,
		&status,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Status = domain.ProductStatus(status)
	return &p, nil
}
