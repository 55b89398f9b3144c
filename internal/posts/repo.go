package posts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariel-nathan/chirp/internal/domain"
)

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

func (r *Repository) Insert(ctx context.Context, authorID, content string) (domain.Post, error) {
	var p domain.Post
	err := r.Pool.QueryRow(ctx,
		`INSERT INTO posts (author_id, content)
		 VALUES ($1, $2)
		 RETURNING id, seq, author_id, content, created_at`,
		authorID, content,
	).Scan(&p.ID, &p.Seq, &p.AuthorID, &p.Content, &p.CreatedAt)
	if err != nil {
		return domain.Post{}, err
	}
	return p, nil
}

// ListNewest returns the most recent posts, newest first. Posts created
// in the same instant come back in reverse insertion order via seq.
func (r *Repository) ListNewest(ctx context.Context, limit int) ([]domain.Post, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT id, seq, author_id, content, created_at
		 FROM posts
		 ORDER BY created_at DESC, seq DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPosts(rows)
}

func (r *Repository) GetByID(ctx context.Context, postID string) (domain.Post, error) {
	var p domain.Post
	err := r.Pool.QueryRow(ctx,
		`SELECT id, seq, author_id, content, created_at
		 FROM posts
		 WHERE id = $1`,
		postID,
	).Scan(&p.ID, &p.Seq, &p.AuthorID, &p.Content, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Post{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Post{}, err
	}
	return p, nil
}

func (r *Repository) ListByAuthor(ctx context.Context, authorID string, limit int) ([]domain.Post, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT id, seq, author_id, content, created_at
		 FROM posts
		 WHERE author_id = $1
		 ORDER BY created_at DESC, seq DESC
		 LIMIT $2`,
		authorID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPosts(rows)
}

func collectPosts(rows pgx.Rows) ([]domain.Post, error) {
	out := make([]domain.Post, 0)
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Seq, &p.AuthorID, &p.Content, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
