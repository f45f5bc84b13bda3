package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/juju/errors"
)

const redisKeyPrefix = "job-intake:session:"

// RedisStore keeps sessions in Redis so several server processes can share
// them.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the Redis server at url
// (redis://[:password@]host:port/db).
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Annotate(err, "parsing redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Annotate(err, "ping redis")
	}
	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errors.NotFoundf("session")
	}
	if err != nil {
		return nil, errors.Annotate(err, "loading session")
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errors.Annotate(err, "decoding session")
	}
	s.ID = id
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *Session, ttl time.Duration) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return errors.Annotate(err, "encoding session")
	}
	if err := r.client.Set(ctx, redisKeyPrefix+s.ID, raw, ttl).Err(); err != nil {
		return errors.Annotate(err, "saving session")
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return errors.Annotate(err, "deleting session")
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
