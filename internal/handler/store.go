package handler

import (
	"context"

	"github.com/blogapi/blogapi/internal/model"
)

// UserStore persists users. Update and remove return the affected rows;
// an empty result means no user had that id.
type UserStore interface {
	Users(ctx context.Context) ([]model.User, error)
	UserPosts(ctx context.Context, userID int64) ([]model.UserPost, error)
	InsertUser(ctx context.Context, user model.User) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, user model.User) ([]model.User, error)
	RemoveUser(ctx context.Context, id int64) ([]model.User, error)
}

// PostStore persists posts with the same empty-result convention as UserStore.
type PostStore interface {
	Posts(ctx context.Context) ([]model.Post, error)
	InsertPost(ctx context.Context, post model.Post) (*model.Post, error)
	UpdatePost(ctx context.Context, id int64, post model.Post) ([]model.Post, error)
	RemovePost(ctx context.Context, id int64) ([]model.Post, error)
}
