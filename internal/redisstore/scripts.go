package redisstore

import "github.com/redis/go-redis/v9"

// Status codes returned by the write scripts.
const (
	scriptNotFound   = 0
	scriptNameTaken  = -1
	scriptNoSuchUser = -1
)

// insertUserScript reserves the name and writes the user in one step.
//
// KEYS: users:names, users:seq, users
// ARGV: name, user key prefix
var insertUserScript = redis.NewScript(`
	if redis.call('HEXISTS', KEYS[1], ARGV[1]) == 1 then
		return -1
	end

	local id = redis.call('INCR', KEYS[2])
	redis.call('HSET', KEYS[1], ARGV[1], id)
	redis.call('HSET', ARGV[2] .. id, 'id', id, 'name', ARGV[1])
	redis.call('ZADD', KEYS[3], id, id)

	return id
`)

// updateUserScript renames an existing user, moving the name reservation.
// A missing user hash is left missing.
//
// KEYS: user:{id}, users:names
// ARGV: new name, id
var updateUserScript = redis.NewScript(`
	local current = redis.call('HGET', KEYS[1], 'name')
	if not current then
		return 0
	end

	if current ~= ARGV[1] then
		if redis.call('HSETNX', KEYS[2], ARGV[1], ARGV[2]) == 0 then
			return -1
		end
		redis.call('HDEL', KEYS[2], current)
		redis.call('HSET', KEYS[1], 'name', ARGV[1])
	end

	return 1
`)

// removeUserScript deletes a user, their posts and their name reservation.
// Returns the removed name, or nil when the user does not exist.
//
// KEYS: user:{id}, user:{id}:posts, users, posts, users:names
// ARGV: id, post key prefix
var removeUserScript = redis.NewScript(`
	local name = redis.call('HGET', KEYS[1], 'name')
	if not name then
		return false
	end

	local posts = redis.call('ZRANGE', KEYS[2], 0, -1)
	for _, postID in ipairs(posts) do
		redis.call('DEL', ARGV[2] .. postID)
		redis.call('ZREM', KEYS[4], postID)
	end

	redis.call('DEL', KEYS[1], KEYS[2])
	redis.call('ZREM', KEYS[3], ARGV[1])
	redis.call('HDEL', KEYS[5], name)

	return name
`)

// insertPostScript writes a post for an existing user.
//
// KEYS: user:{userId}, posts:seq, posts, user:{userId}:posts
// ARGV: text, userId, post key prefix
var insertPostScript = redis.NewScript(`
	if redis.call('EXISTS', KEYS[1]) == 0 then
		return -1
	end

	local id = redis.call('INCR', KEYS[2])
	redis.call('HSET', ARGV[3] .. id, 'id', id, 'text', ARGV[1], 'user_id', ARGV[2])
	redis.call('ZADD', KEYS[3], id, id)
	redis.call('ZADD', KEYS[4], id, id)

	return id
`)

// updatePostScript rewrites an existing post, moving it between owners' indexes.
// A missing post hash is left missing.
//
// KEYS: post:{id}, user:{userId}
// ARGV: text, userId, id, user key prefix, user posts suffix
var updatePostScript = redis.NewScript(`
	local owner = redis.call('HGET', KEYS[1], 'user_id')
	if not owner then
		return 0
	end
	if redis.call('EXISTS', KEYS[2]) == 0 then
		return -1
	end

	redis.call('HSET', KEYS[1], 'text', ARGV[1], 'user_id', ARGV[2])
	if owner ~= ARGV[2] then
		redis.call('ZREM', ARGV[4] .. owner .. ARGV[5], ARGV[3])
		redis.call('ZADD', ARGV[4] .. ARGV[2] .. ARGV[5], ARGV[3], ARGV[3])
	end

	return 1
`)

// removePostScript deletes a post and its index entries.
// Returns {text, user_id}, or nil when the post does not exist.
//
// KEYS: post:{id}, posts
// ARGV: id, user key prefix, user posts suffix
var removePostScript = redis.NewScript(`
	local fields = redis.call('HMGET', KEYS[1], 'text', 'user_id')
	if not fields[2] then
		return false
	end

	redis.call('DEL', KEYS[1])
	redis.call('ZREM', KEYS[2], ARGV[1])
	redis.call('ZREM', ARGV[2] .. fields[2] .. ARGV[3], ARGV[1])

	return fields
`)
