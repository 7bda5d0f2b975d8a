package redisstore

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/redis/go-redis/v9"

	"github.com/blogapi/blogapi/internal/model"
)

type userHash struct {
	ID   int64  `redis:"id"`
	Name string `redis:"name"`
}

func (h userHash) toModel() model.User {
	return model.User{ID: h.ID, Name: h.Name}
}

// Users returns every user ordered by id.
func (s *Store) Users(ctx context.Context) ([]model.User, error) {
	ids, err := s.client.ZRange(ctx, usersIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	if _, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, userKey(id))
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	users := make([]model.User, 0, len(ids))
	for _, cmd := range cmds {
		if len(cmd.Val()) == 0 {
			continue // removed between ZRANGE and HGETALL
		}
		var h userHash
		if err := cmd.Scan(&h); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, h.toModel())
	}

	return users, nil
}

// UserPosts returns the user's posts with the author's name attached.
// An unknown user and a user without posts both yield an empty slice.
func (s *Store) UserPosts(ctx context.Context, userID int64) ([]model.UserPost, error) {
	id := formatID(userID)

	name, err := s.client.HGet(ctx, userKey(id), "name").Result()
	if errors.Is(err, redis.Nil) {
		return []model.UserPost{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	postIDs, err := s.client.ZRange(ctx, userPostsKey(id), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list user posts: %w", err)
	}

	posts, err := s.loadPosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	result := make([]model.UserPost, 0, len(posts))
	for _, p := range posts {
		result = append(result, model.UserPost{
			ID:       p.ID,
			Text:     p.Text,
			UserID:   p.UserID,
			PostedBy: name,
		})
	}

	return result, nil
}

// InsertUser stores a new user and returns it with its assigned id.
func (s *Store) InsertUser(ctx context.Context, user model.User) (*model.User, error) {
	if utf8.RuneCountInString(user.Name) > MaxNameLength {
		return nil, ErrNameTooLong
	}

	id, err := insertUserScript.Run(ctx, s.client,
		[]string{userNamesKey, usersSeqKey, usersIndexKey},
		user.Name, userKeyPrefix,
	).Int64()
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if id == scriptNameTaken {
		return nil, ErrNameExists
	}

	return &model.User{ID: id, Name: user.Name}, nil
}

// UpdateUser renames a user. The returned slice is empty when no user matched.
func (s *Store) UpdateUser(ctx context.Context, userID int64, user model.User) ([]model.User, error) {
	id := formatID(userID)

	if utf8.RuneCountInString(user.Name) > MaxNameLength {
		n, err := s.client.Exists(ctx, userKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		if n == 0 {
			return []model.User{}, nil
		}
		return nil, ErrNameTooLong
	}

	status, err := updateUserScript.Run(ctx, s.client,
		[]string{userKey(id), userNamesKey},
		user.Name, id,
	).Int64()
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	switch status {
	case scriptNotFound:
		return []model.User{}, nil
	case scriptNameTaken:
		return nil, ErrNameExists
	}
	return []model.User{{ID: userID, Name: user.Name}}, nil
}

// RemoveUser deletes a user together with their posts.
// The returned slice holds the removed user and is empty when no user matched.
func (s *Store) RemoveUser(ctx context.Context, userID int64) ([]model.User, error) {
	id := formatID(userID)

	name, err := removeUserScript.Run(ctx, s.client,
		[]string{userKey(id), userPostsKey(id), usersIndexKey, postsIndexKey, userNamesKey},
		id, postKeyPrefix,
	).Text()
	if errors.Is(err, redis.Nil) {
		return []model.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	return []model.User{{ID: userID, Name: name}}, nil
}
