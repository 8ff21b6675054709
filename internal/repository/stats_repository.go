package repository

import (
	"context"

	"gropower-backend/internal/db"
	"gropower-backend/internal/domain"
)

// StatsRepository feeds the admin dashboard counters.
type StatsRepository struct {
	DB *db.Postgres
}

func (r StatsRepository) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	var s domain.DashboardStats
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT
			count(*) FILTER (WHERE role=$1),
			count(*) FILTER (WHERE role=$2),
			count(*) FILTER (WHERE role=$3),
			count(*) FILTER (WHERE role NOT IN ($1,$2,$3,$4))
		FROM users
		WHERE deleted_at IS NULL
	`, domain.RoleDealer, domain.RoleDistributor, domain.RoleStaff, domain.RoleAdmin).
		Scan(&s.DealerCount, &s.DistributorCount, &s.StaffCount, &s.OthersCount)
	if err != nil {
		return nil, err
	}

	if err := r.DB.Pool.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&s.OrderCount); err != nil {
		return nil, err
	}
	if err := r.DB.Pool.QueryRow(ctx, `
		SELECT count(*) FROM products WHERE deleted_at IS NULL
	`).Scan(&s.ProductCount); err != nil {
		return nil, err
	}
	return &s, nil
}
