// Package csrf implements single-use anti-forgery tokens for the admin forms.
// Tokens are scoped by intent (e.g. "delete:excuse:42"): a token issued for
// one entity cannot authorize a mutation on another. Storage is redis with a
// TTL, consumption is GETDEL so a token can never be replayed.
package csrf

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "csrf:"

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Issue creates a fresh token bound to intent, valid for the store's TTL.
func (s *Store) Issue(ctx context.Context, intent string) (string, error) {
	token := uuid.NewString()
	if err := s.rdb.Set(ctx, keyPrefix+intent+":"+token, "1", s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Consume validates and invalidates a token in one step. Returns false for
// missing, expired, replayed, or wrong-intent tokens.
func (s *Store) Consume(ctx context.Context, intent, token string) bool {
	if token == "" {
		return false
	}
	err := s.rdb.GetDel(ctx, keyPrefix+intent+":"+token).Err()
	return err == nil
}
