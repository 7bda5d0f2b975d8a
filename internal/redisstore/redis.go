// Package redisstore provides Redis-backed user and post stores.
//
// Records live in hashes (user:{id}, post:{id}); insertion order is kept in
// sorted sets scored by id so listings come back ordered like the SQL store.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key layout.
const (
	usersSeqKey   = "users:seq"
	postsSeqKey   = "posts:seq"
	usersIndexKey = "users"
	postsIndexKey = "posts"
	userNamesKey  = "users:names"

	userKeyPrefix   = "user:"
	postKeyPrefix   = "post:"
	userPostsSuffix = ":posts"
)

// MaxNameLength mirrors the users.name column width of the SQL schema.
const MaxNameLength = 128

// Common store errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrNameExists   = errors.New("user name already exists")
	ErrNameTooLong  = errors.New("user name exceeds maximum length")
)

// Store provides Redis-backed persistence for users and posts.
type Store struct {
	client *redis.Client
}

// New creates a new Store with a Redis client.
func New(ctx context.Context, redisURL string) (*Store, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	// Connection pool settings
	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	// Verify connection
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Store{client: client}, nil
}

// Ping checks Redis connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Client returns the underlying Redis client.
// Use sparingly - prefer adding methods to Store.
func (s *Store) Client() *redis.Client {
	return s.client
}

func userKey(id string) string {
	return userKeyPrefix + id
}

func postKey(id string) string {
	return postKeyPrefix + id
}

func userPostsKey(userID string) string {
	return userKeyPrefix + userID + userPostsSuffix
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
