package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"playex_v2/internal/common"
	"playex_v2/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

// PracticeStore keeps timed practice sessions. Sessions are transient by
// nature, so the backing store is Redis with a TTL rather than Postgres.
type PracticeStore interface {
	Save(ctx context.Context, session *model.PracticeSession, ttl time.Duration) error
	Find(ctx context.Context, id string) (*model.PracticeSession, error)
	Delete(ctx context.Context, id string) error
}

type redisPracticeStore struct {
	rdb *redis.Client
}

func NewRedisPracticeStore(rdb *redis.Client) PracticeStore {
	return &redisPracticeStore{rdb: rdb}
}

func practiceKey(id string) string {
	return "practice:session:" + id
}

func (s *redisPracticeStore) Save(ctx context.Context, session *model.PracticeSession, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redisPracticeStore.Save marshal: %w", err)
	}
	if err := s.rdb.Set(ctx, practiceKey(session.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redisPracticeStore.Save: %w", err)
	}
	return nil
}

func (s *redisPracticeStore) Find(ctx context.Context, id string) (*model.PracticeSession, error) {
	payload, err := s.rdb.Get(ctx, practiceKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("redisPracticeStore.Find: %w", err)
	}
	session := &model.PracticeSession{}
	if err := json.Unmarshal([]byte(payload), session); err != nil {
		return nil, fmt.Errorf("redisPracticeStore.Find unmarshal: %w", err)
	}
	return session, nil
}

func (s *redisPracticeStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, practiceKey(id)).Err(); err != nil {
		return fmt.Errorf("redisPracticeStore.Delete: %w", err)
	}
	return nil
}
