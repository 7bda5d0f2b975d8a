package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/blogapi/blogapi/internal/model"
)

// MockStore is a testify mock satisfying both the user and post store contracts.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Users(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *MockStore) UserPosts(ctx context.Context, userID int64) ([]model.UserPost, error) {
	args := m.Called(ctx, userID)
	posts, _ := args.Get(0).([]model.UserPost)
	return posts, args.Error(1)
}

func (m *MockStore) InsertUser(ctx context.Context, user model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	created, _ := args.Get(0).(*model.User)
	return created, args.Error(1)
}

func (m *MockStore) UpdateUser(ctx context.Context, id int64, user model.User) ([]model.User, error) {
	args := m.Called(ctx, id, user)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *MockStore) RemoveUser(ctx context.Context, id int64) ([]model.User, error) {
	args := m.Called(ctx, id)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *MockStore) Posts(ctx context.Context) ([]model.Post, error) {
	args := m.Called(ctx)
	posts, _ := args.Get(0).([]model.Post)
	return posts, args.Error(1)
}

func (m *MockStore) InsertPost(ctx context.Context, post model.Post) (*model.Post, error) {
	args := m.Called(ctx, post)
	created, _ := args.Get(0).(*model.Post)
	return created, args.Error(1)
}

func (m *MockStore) UpdatePost(ctx context.Context, id int64, post model.Post) ([]model.Post, error) {
	args := m.Called(ctx, id, post)
	posts, _ := args.Get(0).([]model.Post)
	return posts, args.Error(1)
}

func (m *MockStore) RemovePost(ctx context.Context, id int64) ([]model.Post, error) {
	args := m.Called(ctx, id)
	posts, _ := args.Get(0).([]model.Post)
	return posts, args.Error(1)
}

// Ping reports store health; tests set it with On("Ping", ...) only when needed.
func (m *MockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
