package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"gropower-backend/internal/db"
	"gropower-backend/internal/domain"
)

type TaskRepository struct {
	DB *db.Postgres
}

type CreateTaskParams struct {
	UserID       int64
	AssigneeName string
	Title        string
	Description  string
}

const taskColumns = `id, user_id, assignee_name, title, description, status, created_at, updated_at`

func (r TaskRepository) Create(ctx context.Context, p CreateTaskParams) (*domain.Task, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO tasks (user_id, assignee_name, title, description, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5, now(), now())
		RETURNING `+taskColumns+`
	`, p.UserID, p.AssigneeName, p.Title, p.Description, domain.TaskPending)
	return scanTask(row)
}

func (r TaskRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Task, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE user_id=$1 AND deleted_at IS NULL
		ORDER BY id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r TaskRepository) UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus) error {
	ct, err := r.DB.Pool.Exec(ctx, `
		UPDATE tasks SET status=$1, updated_at=now()
		WHERE id=$2 AND deleted_at IS NULL
	`, status, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a task, but only when it belongs to the given assignee.
func (r TaskRepository) Delete(ctx context.Context, id, userID int64) error {
	ct, err := r.DB.Pool.Exec(ctx, `
		UPDATE tasks SET deleted_at=now()
		WHERE id=$1 AND user_id=$2 AND deleted_at IS NULL
	`, id, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTask(row interface {
	Scan(dest ...any) error
}) (*domain.Task, error) {
	var (
		t      domain.Task
		status string
	)
	if err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.AssigneeName,
		&t.Title,
		&t.Description,
		&status,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	t.Status = domain.TaskStatus(status)
	return &t, nil
}
