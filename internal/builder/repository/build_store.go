package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/entity"
)

// BuildStore persists one build per session. Only the Build is stored;
// derived values are recomputed on load.
type BuildStore interface {
	Load(ctx context.Context, session string) (entity.Build, error)
	Save(ctx context.Context, session string, b entity.Build) error
	Clear(ctx context.Context, session string) error
}

// storedBuild is the persisted record shape.
type storedBuild struct {
	Build entity.Build `json:"build"`
}

// RedisBuildStore 基于 Redis 的装机方案存储
type RedisBuildStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisBuildStore(rdb *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *RedisBuildStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisBuildStore{rdb: rdb, prefix: prefix, ttl: ttl, logger: logger}
}

// Key returns the storage key for a session.
func (s *RedisBuildStore) Key(session string) string {
	return s.prefix + ":" + session
}

// Load returns the stored build. An absent or malformed record yields the
// empty build; only transport errors are returned.
func (s *RedisBuildStore) Load(ctx context.Context, session string) (entity.Build, error) {
	data, err := s.rdb.Get(ctx, s.Key(session)).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.Build{}, nil
	}
	if err != nil {
		return entity.Build{}, fmt.Errorf("load build %s: %w", session, err)
	}

	var rec storedBuild
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Warn("Discarding malformed stored build",
			zap.String("session_id", session),
			zap.Error(err),
		)
		return entity.Build{}, nil
	}
	return rec.Build, nil
}

func (s *RedisBuildStore) Save(ctx context.Context, session string, b entity.Build) error {
	data, err := json.Marshal(storedBuild{Build: b})
	if err != nil {
		return fmt.Errorf("encode build %s: %w", session, err)
	}
	if err := s.rdb.Set(ctx, s.Key(session), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save build %s: %w", session, err)
	}
	return nil
}

func (s *RedisBuildStore) Clear(ctx context.Context, session string) error {
	if err := s.rdb.Del(ctx, s.Key(session)).Err(); err != nil {
		return fmt.Errorf("clear build %s: %w", session, err)
	}
	return nil
}
