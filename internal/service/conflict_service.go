package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campus-ops/reservation-console/internal/dto"
	"github.com/campus-ops/reservation-console/internal/models"
	"github.com/campus-ops/reservation-console/internal/upstream"
	appErrors "github.com/campus-ops/reservation-console/pkg/errors"
)

type conflictSource interface {
	List(ctx context.Context, token string) ([]models.ConflictRecord, error)
	Detect(ctx context.Context, token string) ([]models.ConflictRecord, error)
	Preview(ctx context.Context, token string) ([]models.ConflictRecord, error)
}

type eventMutator interface {
	Reschedule(ctx context.Context, token string, eventID int64, req dto.RescheduleRequest) (*models.Event, error)
	ChangeRoom(ctx context.Context, token string, eventID int64, req dto.ChangeRoomRequest) (*models.Event, error)
}

type roomLister interface {
	ListRooms(ctx context.Context, token string) ([]models.Room, error)
}

type conflictCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

const (
	cacheKeyConflicts     = "conflicts:records"
	cachePatternConflicts = "conflicts:*"
)

// reviewSession holds the per-operator dismissal set. Dismissals never reach
// the backend; they expire with the session.
type reviewSession struct {
	dismissed map[string]struct{}
	expiresAt time.Time
}

// ConflictServiceConfig tunes the per-session review state and the shared
// conflict-list cache.
type ConflictServiceConfig struct {
	SessionTTL   time.Duration
	CacheEnabled bool
	CacheTTL     time.Duration
}

// ConflictService drives the conflict review workflow: listing, grouping,
// detection with preview fallback, remedies and local dismissals.
type ConflictService struct {
	conflicts conflictSource
	events    eventMutator
	rooms     roomLister
	cache     conflictCache
	validate  *validator.Validate
	logger    *zap.Logger
	cfg       ConflictServiceConfig

	mu       sync.RWMutex
	sessions map[string]*reviewSession
}

// NewConflictService constructs the service with defaults. A nil cache
// disables the conflict-list cache.
func NewConflictService(conflicts conflictSource, events eventMutator, rooms roomLister, cache conflictCache, validate *validator.Validate, logger *zap.Logger, cfg ConflictServiceConfig) *ConflictService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 2 * time.Hour
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	return &ConflictService{
		conflicts: conflicts,
		events:    events,
		rooms:     rooms,
		cache:     cache,
		validate:  validate,
		logger:    logger,
		cfg:       cfg,
		sessions:  make(map[string]*reviewSession),
	}
}

// List returns the current conflicts, filtered and shaped per the query.
// The search term matches teacher or room names of either event,
// case-insensitively, before grouping so that a half-filtered cluster still
// groups correctly.
func (s *ConflictService) List(ctx context.Context, session models.Session, query dto.ConflictQuery) (*dto.ConflictListResponse, error) {
	records, err := s.loadRecords(ctx, session.Token)
	if err != nil {
		return nil, err
	}

	filtered := filterConflicts(records, query.Search)
	resp := &dto.ConflictListResponse{Summary: SummarizeConflicts(filtered)}

	if !query.Grouped {
		resp.Conflicts = filtered
		return resp, nil
	}

	dismissed := s.dismissedSet(session)
	groups := GroupConflicts(filtered)
	views := make([]dto.GroupView, 0, len(groups))
	for _, g := range groups {
		if _, skip := dismissed[g.ID]; skip {
			continue
		}
		views = append(views, dto.GroupView{
			ConflictGroup: g,
			Description:   GroupDescription(g),
			Suggestions:   ResolutionSuggestions(g),
		})
	}
	resp.Groups = views
	return resp, nil
}

// loadRecords reads the shared conflict list through the cache. Records are
// cached raw, before any filtering, so every query shape is served from the
// same entry.
func (s *ConflictService) loadRecords(ctx context.Context, token string) ([]models.ConflictRecord, error) {
	if s.cacheEnabled() {
		var cached []models.ConflictRecord
		err := s.cache.Get(ctx, cacheKeyConflicts, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("conflict cache read failed", zap.Error(err))
		}
	}

	records, err := s.conflicts.List(ctx, token)
	if err != nil {
		return nil, err
	}
	if s.cacheEnabled() {
		if err := s.cache.Set(ctx, cacheKeyConflicts, records, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("conflict cache write failed", zap.Error(err))
		}
	}
	return records, nil
}

func (s *ConflictService) cacheEnabled() bool {
	return s.cfg.CacheEnabled && s.cache != nil
}

// invalidateCache drops all cached conflict entries. Called after anything
// that changes the upstream conflict set.
func (s *ConflictService) invalidateCache(ctx context.Context) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, cachePatternConflicts); err != nil {
		s.logger.Warn("invalidate conflict cache", zap.Error(err))
	}
}

// Detect runs a persisting detection pass. When the backend rejects it
// because identical results already exist, the read-only preview is returned
// instead and flagged as such.
func (s *ConflictService) Detect(ctx context.Context, session models.Session) (*dto.DetectResponse, error) {
	records, err := s.conflicts.Detect(ctx, session.Token)
	if err == nil {
		s.invalidateCache(ctx)
		return &dto.DetectResponse{Conflicts: records, Preview: false}, nil
	}
	if !upstream.IsDuplicateDetection(err) {
		return nil, err
	}

	s.logger.Info("detection rejected as duplicate, falling back to preview")
	preview, perr := s.conflicts.Preview(ctx, session.Token)
	if perr != nil {
		return nil, perr
	}
	return &dto.DetectResponse{Conflicts: preview, Preview: true}, nil
}

// Reschedule applies the reschedule remedy to one event and immediately runs
// a fresh detection pass. The caller always sees post-remedy reality, never a
// stale snapshot.
func (s *ConflictService) Reschedule(ctx context.Context, session models.Session, eventID int64, req dto.RescheduleRequest) (*dto.DetectResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reschedule request")
	}
	if _, err := s.events.Reschedule(ctx, session.Token, eventID, req); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return s.Detect(ctx, session)
}

// ChangeRoom applies the room-change remedy to one event and immediately runs
// a fresh detection pass.
func (s *ConflictService) ChangeRoom(ctx context.Context, session models.Session, eventID int64, req dto.ChangeRoomRequest) (*dto.DetectResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid change-room request")
	}
	if _, err := s.events.ChangeRoom(ctx, session.Token, eventID, req); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return s.Detect(ctx, session)
}

// Rooms lists candidate rooms for the change-room remedy.
func (s *ConflictService) Rooms(ctx context.Context, session models.Session) ([]models.Room, error) {
	return s.rooms.ListRooms(ctx, session.Token)
}

// Dismiss hides a group for this session only. The underlying records stay
// untouched upstream and reappear in a fresh session.
func (s *ConflictService) Dismiss(session models.Session, groupID string) {
	key := sessionKey(session)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(time.Now())

	rs, ok := s.sessions[key]
	if !ok {
		rs = &reviewSession{dismissed: make(map[string]struct{})}
		s.sessions[key] = rs
	}
	rs.dismissed[groupID] = struct{}{}
	rs.expiresAt = time.Now().Add(s.cfg.SessionTTL)
}

// Restore clears all dismissals for this session.
func (s *ConflictService) Restore(session models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionKey(session))
}

func (s *ConflictService) dismissedSet(session models.Session) map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rs, ok := s.sessions[sessionKey(session)]
	if !ok || time.Now().After(rs.expiresAt) {
		return nil
	}
	out := make(map[string]struct{}, len(rs.dismissed))
	for id := range rs.dismissed {
		out[id] = struct{}{}
	}
	return out
}

// pruneLocked drops expired sessions. Callers must hold the write lock.
func (s *ConflictService) pruneLocked(now time.Time) {
	for key, rs := range s.sessions {
		if now.After(rs.expiresAt) {
			delete(s.sessions, key)
		}
	}
}

func sessionKey(session models.Session) string {
	if session.UserID != "" {
		return session.UserID
	}
	return session.Token
}

func filterConflicts(records []models.ConflictRecord, term string) []models.ConflictRecord {
	term = strings.TrimSpace(strings.ToLower(term))
	if term == "" {
		return records
	}
	out := make([]models.ConflictRecord, 0, len(records))
	for _, rec := range records {
		if eventMatches(rec.Event1, term) || eventMatches(rec.Event2, term) {
			out = append(out, rec)
		}
	}
	return out
}

func eventMatches(e *models.Event, term string) bool {
	if e == nil {
		return false
	}
	if e.Teacher != nil && strings.Contains(strings.ToLower(e.Teacher.Name), term) {
		return true
	}
	if e.Room != nil && strings.Contains(strings.ToLower(e.Room.Name), term) {
		return true
	}
	return false
}
