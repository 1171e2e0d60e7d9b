// Package redis connects to Redis with retries and exposes a health check.
//
// The connection is optional: an empty REDIS_URL makes Connect return
// ErrEmptyConnectionURL and callers fall back to in-memory storage.
//
//	client, err := redis.Connect(ctx, cfg)
//	if errors.Is(err, redis.ErrEmptyConnectionURL) {
//	    // use memory storage
//	}
package redis
