package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/campus-ops/reservation-console/internal/models"
	appErrors "github.com/campus-ops/reservation-console/pkg/errors"
)

const (
	cacheKeyCourses = "catalog:courses"
	cacheKeyRooms   = "catalog:rooms"
)

type catalogSource interface {
	ListCourses(ctx context.Context, token string) ([]models.Course, error)
	ListRooms(ctx context.Context, token string) ([]models.Room, error)
}

type cacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type cacheObserver interface {
	RecordCacheOperation(hit bool, duration time.Duration)
}

// CatalogServiceConfig tunes the catalog cache.
type CatalogServiceConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// CatalogService serves the course catalog and room inventory with a
// cache-aside layer. The catalog is shared across operators, so cache keys
// are global.
type CatalogService struct {
	source  catalogSource
	cache   cacheStore
	metrics cacheObserver
	logger  *zap.Logger
	cfg     CatalogServiceConfig
}

// NewCatalogService constructs the service with defaults.
func NewCatalogService(source catalogSource, cache cacheStore, metrics cacheObserver, logger *zap.Logger, cfg CatalogServiceConfig) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &CatalogService{source: source, cache: cache, metrics: metrics, logger: logger, cfg: cfg}
}

// ListCourses returns the course catalog, served from cache when fresh.
func (s *CatalogService) ListCourses(ctx context.Context, token string) ([]models.Course, error) {
	var courses []models.Course
	if s.cachedGet(ctx, cacheKeyCourses, &courses) {
		return courses, nil
	}

	courses, err := s.source.ListCourses(ctx, token)
	if err != nil {
		return nil, err
	}
	s.cachedSet(ctx, cacheKeyCourses, courses)
	return courses, nil
}

// ListRooms returns the room inventory, served from cache when fresh.
func (s *CatalogService) ListRooms(ctx context.Context, token string) ([]models.Room, error) {
	var rooms []models.Room
	if s.cachedGet(ctx, cacheKeyRooms, &rooms) {
		return rooms, nil
	}

	rooms, err := s.source.ListRooms(ctx, token)
	if err != nil {
		return nil, err
	}
	s.cachedSet(ctx, cacheKeyRooms, rooms)
	return rooms, nil
}

// Invalidate drops the cached catalog so the next read refetches.
func (s *CatalogService) Invalidate(ctx context.Context) {
	if !s.cfg.CacheEnabled || s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKeyCourses); err != nil {
		s.logger.Warn("invalidate courses cache", zap.Error(err))
	}
	if err := s.cache.Delete(ctx, cacheKeyRooms); err != nil {
		s.logger.Warn("invalidate rooms cache", zap.Error(err))
	}
}

func (s *CatalogService) cachedGet(ctx context.Context, key string, dest interface{}) bool {
	if !s.cfg.CacheEnabled || s.cache == nil {
		return false
	}

	start := time.Now()
	err := s.cache.Get(ctx, key, dest)
	hit := err == nil
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit, time.Since(start))
	}
	if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	return hit
}

func (s *CatalogService) cachedSet(ctx context.Context, key string, value interface{}) {
	if !s.cfg.CacheEnabled || s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
