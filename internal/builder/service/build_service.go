package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/engine"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/entity"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/repository"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/sse"
)

// ErrKindMismatch is returned when a component does not belong in the requested slot.
var ErrKindMismatch = engine.ErrKindMismatch

// ComponentResolver looks up catalog components by objectID.
type ComponentResolver interface {
	FindByID(ctx context.Context, objectID string) (*entity.CatalogItem, error)
}

type buildSession struct {
	mu       sync.Mutex
	loaded   bool
	build    entity.Build
	lastSeen time.Time
}

// BuildService 装机会话服务
//
// The in-memory build is authoritative. It is rehydrated from the store on
// first mutation, written through after every mutation, and kept as-is when
// the write fails. Read-only access never creates a session; idle sessions
// are dropped by EvictIdle.
type BuildService struct {
	store    repository.BuildStore
	resolver ComponentResolver
	hub      *sse.Hub
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*buildSession
}

func NewBuildService(store repository.BuildStore, resolver ComponentResolver, hub *sse.Hub, logger *zap.Logger) *BuildService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BuildService{
		store:    store,
		resolver: resolver,
		hub:      hub,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*buildSession),
	}
}

// session returns the live session for id, creating it when create is set.
func (s *BuildService) session(id string, create bool) *buildSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		if !create {
			return nil
		}
		sess = &buildSession{}
		s.sessions[id] = sess
	}
	sess.lastSeen = s.now()
	return sess
}

func (s *BuildService) load(ctx context.Context, id string) (entity.Build, error) {
	b, err := s.store.Load(ctx, id)
	if err != nil {
		s.logger.Warn("Failed to load stored build",
			zap.String("session_id", id),
			zap.Error(err),
		)
	}
	return b, err
}

// rehydrate must be called with sess.mu held. A session stays unloaded
// until the store answers, so a later mutation cannot overwrite the stored
// build with one assembled during an outage.
func (s *BuildService) rehydrate(ctx context.Context, id string, sess *buildSession) {
	if sess.loaded {
		return
	}
	b, err := s.load(ctx, id)
	if err != nil {
		return
	}
	sess.build = b
	sess.loaded = true
}

// persist must be called with sess.mu held.
func (s *BuildService) persist(ctx context.Context, id string, sess *buildSession) {
	var err error
	if sess.build.IsEmpty() {
		err = s.store.Clear(ctx, id)
	} else {
		err = s.store.Save(ctx, id, sess.build)
	}
	if err != nil {
		s.logger.Error("Failed to persist build",
			zap.String("session_id", id),
			zap.Error(err),
		)
		return
	}
	sess.loaded = true
}

// mutate applies fn to the session's build, persists the result and
// notifies the session's subscribers.
func (s *BuildService) mutate(ctx context.Context, id, action string, fn func(entity.Build) (engine.Snapshot, error)) (engine.Snapshot, error) {
	sess := s.session(id, true)
	sess.mu.Lock()
	s.rehydrate(ctx, id, sess)
	snap, err := fn(sess.build)
	if err != nil {
		sess.mu.Unlock()
		return engine.Snapshot{}, err
	}
	sess.build = snap.Build
	s.persist(ctx, id, sess)
	sess.mu.Unlock()

	if s.hub != nil {
		s.hub.PublishBuildUpdate(id, action, snap)
	}
	return snap, nil
}

// Get returns the session's build with its derived values.
func (s *BuildService) Get(ctx context.Context, id string) engine.Snapshot {
	return engine.Rehydrate(s.Current(ctx, id))
}

// Current returns the session's build. Sessions that have never been
// mutated by this process are read straight from the store.
func (s *BuildService) Current(ctx context.Context, id string) entity.Build {
	sess := s.session(id, false)
	if sess == nil {
		b, _ := s.load(ctx, id)
		return b
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.rehydrate(ctx, id, sess)
	return sess.build
}

// Add places c in its slot, replacing any previous occupant.
func (s *BuildService) Add(ctx context.Context, id string, c entity.Component) (engine.Snapshot, error) {
	if c == nil || !c.Kind().Valid() {
		return engine.Snapshot{}, fmt.Errorf("%w: no component", entity.ErrUnknownKind)
	}
	return s.mutate(ctx, id, "add", func(b entity.Build) (engine.Snapshot, error) {
		return engine.Add(b, c), nil
	})
}

// Replace puts c in the slot for kind; c must be of that kind.
func (s *BuildService) Replace(ctx context.Context, id string, kind entity.Kind, c entity.Component) (engine.Snapshot, error) {
	return s.mutate(ctx, id, "replace", func(b entity.Build) (engine.Snapshot, error) {
		return engine.Replace(b, kind, c)
	})
}

// Remove empties the slot for kind.
func (s *BuildService) Remove(ctx context.Context, id string, kind entity.Kind) (engine.Snapshot, error) {
	if !kind.Valid() {
		return engine.Snapshot{}, fmt.Errorf("%w: %d", entity.ErrUnknownKind, int(kind))
	}
	return s.mutate(ctx, id, "remove", func(b entity.Build) (engine.Snapshot, error) {
		return engine.Remove(b, kind), nil
	})
}

// Clear empties every slot.
func (s *BuildService) Clear(ctx context.Context, id string) engine.Snapshot {
	snap, _ := s.mutate(ctx, id, "clear", func(entity.Build) (engine.Snapshot, error) {
		return engine.Clear(), nil
	})
	return snap
}

// Resolve loads a catalog component by objectID.
func (s *BuildService) Resolve(ctx context.Context, objectID string) (entity.Component, error) {
	if s.resolver == nil {
		return nil, repository.ErrNotFound
	}
	item, err := s.resolver.FindByID(ctx, objectID)
	if err != nil {
		return nil, err
	}
	c, err := item.Component()
	if err != nil {
		return nil, fmt.Errorf("decode catalog item %s: %w", objectID, err)
	}
	return c, nil
}

// AddByID resolves objectID from the catalog and adds it to the build.
func (s *BuildService) AddByID(ctx context.Context, id, objectID string) (engine.Snapshot, error) {
	c, err := s.Resolve(ctx, objectID)
	if err != nil {
		return engine.Snapshot{}, err
	}
	return s.Add(ctx, id, c)
}

// Sessions reports how many sessions are held in memory.
func (s *BuildService) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// EvictIdle drops sessions not touched within idle and returns how many
// were removed. Their builds remain in the store until it expires them.
func (s *BuildService) EvictIdle(idle time.Duration) int {
	cutoff := s.now().Add(-idle)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// RunJanitor calls EvictIdle every interval until ctx is done.
func (s *BuildService) RunJanitor(ctx context.Context, idle, interval time.Duration) {
	if idle <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.EvictIdle(idle); n > 0 {
				s.logger.Info("Evicted idle build sessions",
					zap.Int("evicted", n),
					zap.Int("remaining", s.Sessions()),
				)
			}
		}
	}
}

// IsClientError reports whether err was caused by the request rather than the service.
func IsClientError(err error) bool {
	var verr *engine.ValidationError
	return errors.Is(err, ErrKindMismatch) ||
		errors.Is(err, entity.ErrUnknownKind) ||
		errors.Is(err, ErrInvalidImport) ||
		errors.As(err, &verr)
}
