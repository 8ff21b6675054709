package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"gropower-backend/internal/db"
	"gropower-backend/internal/domain"
)

// PostRepository backs the news/blog CMS.
type PostRepository struct {
	DB *db.Postgres
}

const postColumns = `id, title, body, image, created_at, updated_at`

func (r PostRepository) Save(ctx context.Context, p domain.Post) (*domain.Post, error) {
	var row pgx.Row
	if p.ID == 0 {
		row = r.DB.Pool.QueryRow(ctx, `
			INSERT INTO posts (title, body, image, created_at, updated_at)
			VALUES ($1,$2,$3, now(), now())
			RETURNING `+postColumns+`
		`, p.Title, p.Body, p.Image)
	} else {
		row = r.DB.Pool.QueryRow(ctx, `
			UPDATE posts
			SET title=$1, body=$2, image=$3, updated_at=now()
			WHERE id=$4 AND deleted_at IS NULL
			RETURNING `+postColumns+`
		`, p.Title, p.Body, p.Image, p.ID)
	}
	saved, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return saved, nil
}

func (r PostRepository) List(ctx context.Context, limit int) ([]domain.Post, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func (r PostRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE id=$1 AND deleted_at IS NULL
	`, id)
	p, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r PostRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Pool.Exec(ctx, `
		UPDATE posts SET deleted_at=now() WHERE id=$1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPost(row interface {
	Scan(dest ...any) error
}) (*domain.Post, error) {
	var p domain.Post
	if err := row.Scan(&p.ID, &p.Title, &p.Body, &p.Image, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
