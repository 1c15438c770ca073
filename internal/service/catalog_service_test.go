package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-ops/reservation-console/internal/models"
	appErrors "github.com/campus-ops/reservation-console/pkg/errors"
)

type countingCatalogSource struct {
	courses     []models.Course
	rooms       []models.Room
	courseCalls int
	roomCalls   int
}

func (m *countingCatalogSource) ListCourses(ctx context.Context, token string) ([]models.Course, error) {
	m.courseCalls++
	return m.courses, nil
}

func (m *countingCatalogSource) ListRooms(ctx context.Context, token string) ([]models.Room, error) {
	m.roomCalls++
	return m.rooms, nil
}

type memoryCacheStore struct {
	values map[string][]byte
}

func (m *memoryCacheStore) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.values == nil {
		m.values = make(map[string][]byte)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

func (m *memoryCacheStore) Delete(ctx context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func (m *memoryCacheStore) DeleteByPattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.values {
		if strings.HasPrefix(key, prefix) {
			delete(m.values, key)
		}
	}
	return nil
}

type recordingObserver struct {
	hits, misses int
}

func (r *recordingObserver) RecordCacheOperation(hit bool, duration time.Duration) {
	if hit {
		r.hits++
	} else {
		r.misses++
	}
}

func TestCatalogServiceCachesCourses(t *testing.T) {
	source := &countingCatalogSource{courses: testCatalog()}
	cache := &memoryCacheStore{}
	observer := &recordingObserver{}
	svc := NewCatalogService(source, cache, observer, nil, CatalogServiceConfig{CacheEnabled: true, CacheTTL: time.Minute})

	first, err := svc.ListCourses(context.Background(), "token")
	require.NoError(t, err)
	second, err := svc.ListCourses(context.Background(), "token")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, source.courseCalls)
	assert.Equal(t, 1, observer.misses)
	assert.Equal(t, 1, observer.hits)
}

func TestCatalogServiceCacheDisabledAlwaysFetches(t *testing.T) {
	source := &countingCatalogSource{rooms: []models.Room{{ID: 1, Name: "E06"}}}
	svc := NewCatalogService(source, &memoryCacheStore{}, nil, nil, CatalogServiceConfig{CacheEnabled: false})

	_, err := svc.ListRooms(context.Background(), "token")
	require.NoError(t, err)
	_, err = svc.ListRooms(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, 2, source.roomCalls)
}

func TestCatalogServiceInvalidate(t *testing.T) {
	source := &countingCatalogSource{courses: testCatalog()}
	cache := &memoryCacheStore{}
	svc := NewCatalogService(source, cache, nil, nil, CatalogServiceConfig{CacheEnabled: true, CacheTTL: time.Minute})

	_, err := svc.ListCourses(context.Background(), "token")
	require.NoError(t, err)

	svc.Invalidate(context.Background())

	_, err = svc.ListCourses(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, 2, source.courseCalls)
}
