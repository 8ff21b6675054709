package repository

import (
	"context"

	"gropower-backend/internal/db"
	"gropower-backend/internal/domain"
)

type MessageRepository struct {
	DB *db.Postgres
}

func (r MessageRepository) Create(ctx context.Context, senderID, receiverID int64, body string) (*domain.Message, error) {
	var m domain.Message
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO messages (sender_id, receiver_id, body, created_at)
		VALUES ($1,$2,$3, now())
		RETURNING id, sender_id, receiver_id, body, read_at, created_at
	`, senderID, receiverID, body).Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Body, &m.ReadAt, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r MessageRepository) ListByReceiver(ctx context.Context, receiverID int64) ([]domain.Message, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, sender_id, receiver_id, body, read_at, created_at
		FROM messages
		WHERE receiver_id=$1
		ORDER BY created_at DESC
	`, receiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Body, &m.ReadAt, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// MarkRead is scoped to the receiver so users cannot mark someone else's
// messages.
func (r MessageRepository) MarkRead(ctx context.Context, id, receiverID int64) error {
	ct, err := r.DB.Pool.Exec(ctx, `
		UPDATE messages SET read_at=now()
		WHERE id=$1 AND receiver_id=$2 AND read_at IS NULL
	`, id, receiverID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
