package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/blogapi/blogapi/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrNameExists   = errors.New("user name already exists")
)

// Users returns every user ordered by id.
func (r *Repository) Users(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users, err := pgx.CollectRows(rows, scanUser)
	if err != nil {
		return nil, fmt.Errorf("failed to scan users: %w", err)
	}

	return users, nil
}

// UserPosts returns the posts written by the user, joined with the author's name.
// An unknown user and a user without posts both yield an empty slice.
func (r *Repository) UserPosts(ctx context.Context, userID int64) ([]model.UserPost, error) {
	query := `
		SELECT p.id, p.text, p.user_id, u.name
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
		ORDER BY p.id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user posts: %w", err)
	}

	posts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.UserPost, error) {
		var p model.UserPost
		err := row.Scan(&p.ID, &p.Text, &p.UserID, &p.PostedBy)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan user posts: %w", err)
	}

	return posts, nil
}

// InsertUser stores a new user and returns it with its assigned id.
func (r *Repository) InsertUser(ctx context.Context, user model.User) (*model.User, error) {
	query := `
		INSERT INTO users (name)
		VALUES ($1)
		RETURNING id, name
	`

	var created model.User
	err := r.pool.QueryRow(ctx, query, user.Name).Scan(&created.ID, &created.Name)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, ErrNameExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &created, nil
}

// UpdateUser renames a user. The returned slice is empty when no user matched.
func (r *Repository) UpdateUser(ctx context.Context, id int64, user model.User) ([]model.User, error) {
	query := `
		UPDATE users
		SET name = $2
		WHERE id = $1
		RETURNING id, name
	`

	rows, err := r.pool.Query(ctx, query, id, user.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	users, err := pgx.CollectRows(rows, scanUser)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, ErrNameExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return users, nil
}

// RemoveUser deletes a user (and, by cascade, their posts).
// The returned slice holds the removed user and is empty when no user matched.
func (r *Repository) RemoveUser(ctx context.Context, id int64) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, `DELETE FROM users WHERE id = $1 RETURNING id, name`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	users, err := pgx.CollectRows(rows, scanUser)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	return users, nil
}

// scanUser scans a single row into a User model.
func scanUser(row pgx.CollectableRow) (model.User, error) {
	var user model.User
	err := row.Scan(&user.ID, &user.Name)
	return user, err
}
