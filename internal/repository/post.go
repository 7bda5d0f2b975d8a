package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/blogapi/blogapi/internal/model"
)

// Posts returns every post ordered by id.
func (r *Repository) Posts(ctx context.Context) ([]model.Post, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, text, user_id FROM posts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	posts, err := pgx.CollectRows(rows, scanPost)
	if err != nil {
		return nil, fmt.Errorf("failed to scan posts: %w", err)
	}

	return posts, nil
}

// InsertPost stores a new post and returns it with its assigned id.
// Returns ErrUserNotFound when post.UserID references no user.
func (r *Repository) InsertPost(ctx context.Context, post model.Post) (*model.Post, error) {
	query := `
		INSERT INTO posts (text, user_id)
		VALUES ($1, $2)
		RETURNING id, text, user_id
	`

	var created model.Post
	err := r.pool.QueryRow(ctx, query, post.Text, post.UserID).Scan(
		&created.ID,
		&created.Text,
		&created.UserID,
	)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return &created, nil
}

// UpdatePost replaces a post's text and owner. The returned slice is empty when no post matched.
func (r *Repository) UpdatePost(ctx context.Context, id int64, post model.Post) ([]model.Post, error) {
	query := `
		UPDATE posts
		SET text = $2, user_id = $3
		WHERE id = $1
		RETURNING id, text, user_id
	`

	rows, err := r.pool.Query(ctx, query, id, post.Text, post.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	posts, err := pgx.CollectRows(rows, scanPost)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return posts, nil
}

// RemovePost deletes a post. The returned slice is empty when no post matched.
func (r *Repository) RemovePost(ctx context.Context, id int64) ([]model.Post, error) {
	rows, err := r.pool.Query(ctx, `DELETE FROM posts WHERE id = $1 RETURNING id, text, user_id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}

	posts, err := pgx.CollectRows(rows, scanPost)
	if err != nil {
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}

	return posts, nil
}

// scanPost scans a single row into a Post model.
func scanPost(row pgx.CollectableRow) (model.Post, error) {
	var post model.Post
	err := row.Scan(&post.ID, &post.Text, &post.UserID)
	return post, err
}
