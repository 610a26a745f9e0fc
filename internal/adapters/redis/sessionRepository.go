package redis

import (
	"context"
	"time"

	sessionPort "blogcap/internal/ports/session"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "session:"

// SessionRepositoryRedis keeps session records as Redis hashes that expire
// with the token.
type SessionRepositoryRedis struct {
	Client *redis.Client
}

func NewSessionRepositoryRedis(client *redis.Client) *SessionRepositoryRedis {
	return &SessionRepositoryRedis{
		Client: client,
	}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Save writes the record and its TTL atomically.
func (r *SessionRepositoryRedis) Save(ctx context.Context, id string, s sessionPort.Session, ttl time.Duration) error {
	key := sessionKey(id)
	_, err := r.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, "user_id", s.UserID, "kind", s.Kind, "role", s.Role)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

func (r *SessionRepositoryRedis) Get(ctx context.Context, id string) (*sessionPort.Session, error) {
	fields, err := r.Client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, sessionPort.ErrSessionNotFound
	}
	return &sessionPort.Session{
		UserID: fields["user_id"],
		Kind:   fields["kind"],
		Role:   fields["role"],
	}, nil
}

func (r *SessionRepositoryRedis) Delete(ctx context.Context, id string) error {
	return r.Client.Del(ctx, sessionKey(id)).Err()
}
