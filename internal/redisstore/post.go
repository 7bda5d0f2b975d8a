package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/blogapi/blogapi/internal/model"
)

type postHash struct {
	ID     int64  `redis:"id"`
	Text   string `redis:"text"`
	UserID int64  `redis:"user_id"`
}

func (h postHash) toModel() model.Post {
	return model.Post{ID: h.ID, Text: h.Text, UserID: h.UserID}
}

// Posts returns every post ordered by id.
func (s *Store) Posts(ctx context.Context) ([]model.Post, error) {
	ids, err := s.client.ZRange(ctx, postsIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return s.loadPosts(ctx, ids)
}

// InsertPost stores a new post and returns it with its assigned id.
// Returns ErrUserNotFound when post.UserID references no user.
func (s *Store) InsertPost(ctx context.Context, post model.Post) (*model.Post, error) {
	owner := formatID(post.UserID)

	id, err := insertPostScript.Run(ctx, s.client,
		[]string{userKey(owner), postsSeqKey, postsIndexKey, userPostsKey(owner)},
		post.Text, owner, postKeyPrefix,
	).Int64()
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	if id == scriptNoSuchUser {
		return nil, ErrUserNotFound
	}

	return &model.Post{ID: id, Text: post.Text, UserID: post.UserID}, nil
}

// UpdatePost replaces a post's text and owner. The returned slice is empty when no post matched.
func (s *Store) UpdatePost(ctx context.Context, postID int64, post model.Post) ([]model.Post, error) {
	id := formatID(postID)
	owner := formatID(post.UserID)

	status, err := updatePostScript.Run(ctx, s.client,
		[]string{postKey(id), userKey(owner)},
		post.Text, owner, id, userKeyPrefix, userPostsSuffix,
	).Int64()
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	switch status {
	case scriptNotFound:
		return []model.Post{}, nil
	case scriptNoSuchUser:
		return nil, ErrUserNotFound
	}
	return []model.Post{{ID: postID, Text: post.Text, UserID: post.UserID}}, nil
}

// RemovePost deletes a post. The returned slice is empty when no post matched.
func (s *Store) RemovePost(ctx context.Context, postID int64) ([]model.Post, error) {
	id := formatID(postID)

	fields, err := removePostScript.Run(ctx, s.client,
		[]string{postKey(id), postsIndexKey},
		id, userKeyPrefix, userPostsSuffix,
	).StringSlice()
	if errors.Is(err, redis.Nil) {
		return []model.Post{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}

	userID, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse post owner: %w", err)
	}

	return []model.Post{{ID: postID, Text: fields[0], UserID: userID}}, nil
}

// loadPosts fetches the post hashes for ids in one round trip, preserving order.
func (s *Store) loadPosts(ctx context.Context, ids []string) ([]model.Post, error) {
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	if _, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, postKey(id))
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}

	posts := make([]model.Post, 0, len(ids))
	for _, cmd := range cmds {
		if len(cmd.Val()) == 0 {
			continue
		}
		var h postHash
		if err := cmd.Scan(&h); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, h.toModel())
	}

	return posts, nil
}
