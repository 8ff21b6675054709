package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"gropower-backend/internal/db"
	"gropower-backend/internal/domain"
)

type OrderRepository struct {
	DB *db.Postgres
}

type CreateOrderParams struct {
	ProductID     int64
	ProductName   string
	Quantity      int
	TotalAmount   int64
	TransactionID string
	UserID        int64
	Buyer         domain.BuyerSnapshot
}

const orderColumns = `id, product_id, product_name, quantity, total_amount, transaction_id,
		user_id, buyer_name, buyer_email, buyer_call_number, buyer_whatsapp_number,
		buyer_profile_image, status, balance, created_at, updated_at`

// Create inserts one order record. The total is fixed here and never
// recomputed from the product's current price. Each insert is a standalone
// write; concurrent inserts from one checkout carry no ordering guarantee.
func (r OrderRepository) Create(ctx context.Context, p CreateOrderParams) (int64, error) {
	var id int64
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO orders (product_id, product_name, quantity, total_amount, transaction_id,
			user_id, buyer_name, buyer_email, buyer_call_number, buyer_whatsapp_number,
			buyer_profile_image, status, balance, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12, 0, now(), now())
		RETURNING id
	`, p.ProductID, p.ProductName, p.Quantity, p.TotalAmount, p.TransactionID,
		p.UserID, p.Buyer.Name, p.Buyer.Email, p.Buyer.CallNumber, p.Buyer.WhatsappNumber,
		p.Buyer.ProfileImage, domain.OrderPending).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id=$1
	`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r OrderRepository) ListAll(ctx context.Context, limit int) ([]domain.Order, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r OrderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id=$1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

// ListByMonth returns orders created within the given calendar month.
func (r OrderRepository) ListByMonth(ctx context.Context, month time.Time) ([]domain.Order, error) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at DESC, id DESC
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

// UpdateStatus moves an order between pending, confirmed and canceled.
// Last write wins; the only audit trail is updated_at.
func (r OrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	ct, err := r.DB.Pool.Exec(ctx, `
		UPDATE orders SET status=$1, updated_at=now() WHERE id=$2
	`, status, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateBalance overwrites the outstanding balance on the order.
func (r OrderRepository) UpdateBalance(ctx context.Context, id int64, balance int64) error {
	ct, err := r.DB.Pool.Exec(ctx, `
		UPDATE orders SET balance=$1, updated_at=now() WHERE id=$2
	`, balance, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOrder(row interface {
	Scan(dest ...any) error
}) (*domain.Order, error) {
	var (
		o      domain.Order
		status string
	)
	if err := row.Scan(
		&o.ID,
		&o.ProductID,
		&o.ProductName,
		&o.Quantity,
		&o.TotalAmount.Amount,
		&o.TransactionID,
		&o.UserID,
		&o.Buyer.Name,
		&o.Buyer.Email,
		&o.Buyer.CallNumber,
		&o.Buyer.WhatsappNumber,
		&o.Buyer.ProfileImage,
		&status,
		&o.Balance.Amount,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}
