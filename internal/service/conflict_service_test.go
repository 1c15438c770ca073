package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-ops/reservation-console/internal/dto"
	"github.com/campus-ops/reservation-console/internal/models"
	appErrors "github.com/campus-ops/reservation-console/pkg/errors"
)

type mockConflictSource struct {
	records   []models.ConflictRecord
	detectErr error
	detected  []models.ConflictRecord
	preview   []models.ConflictRecord

	listCalls    int
	detectCalls  int
	previewCalls int
}

func (m *mockConflictSource) List(ctx context.Context, token string) ([]models.ConflictRecord, error) {
	m.listCalls++
	return m.records, nil
}

func (m *mockConflictSource) Detect(ctx context.Context, token string) ([]models.ConflictRecord, error) {
	m.detectCalls++
	if m.detectErr != nil {
		return nil, m.detectErr
	}
	return m.detected, nil
}

func (m *mockConflictSource) Preview(ctx context.Context, token string) ([]models.ConflictRecord, error) {
	m.previewCalls++
	return m.preview, nil
}

type mockEventMutator struct {
	rescheduled map[int64]dto.RescheduleRequest
	roomChanges map[int64]dto.ChangeRoomRequest
	err         error
}

func (m *mockEventMutator) Reschedule(ctx context.Context, token string, eventID int64, req dto.RescheduleRequest) (*models.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.rescheduled == nil {
		m.rescheduled = make(map[int64]dto.RescheduleRequest)
	}
	m.rescheduled[eventID] = req
	return &models.Event{ID: eventID, Date: req.Date, StartTime: req.StartTime, EndTime: req.EndTime}, nil
}

func (m *mockEventMutator) ChangeRoom(ctx context.Context, token string, eventID int64, req dto.ChangeRoomRequest) (*models.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.roomChanges == nil {
		m.roomChanges = make(map[int64]dto.ChangeRoomRequest)
	}
	m.roomChanges[eventID] = req
	return &models.Event{ID: eventID}, nil
}

type mockRoomLister struct {
	rooms []models.Room
}

func (m *mockRoomLister) ListRooms(ctx context.Context, token string) ([]models.Room, error) {
	return m.rooms, nil
}

func newTestConflictService(source *mockConflictSource, events *mockEventMutator) *ConflictService {
	return NewConflictService(source, events, &mockRoomLister{}, nil, nil, nil, ConflictServiceConfig{SessionTTL: time.Hour})
}

func newCachedConflictService(source *mockConflictSource, events *mockEventMutator, cache *memoryCacheStore) *ConflictService {
	return NewConflictService(source, events, &mockRoomLister{}, cache, nil, nil, ConflictServiceConfig{
		SessionTTL:   time.Hour,
		CacheEnabled: true,
		CacheTTL:     time.Minute,
	})
}

func testSession() models.Session {
	return models.Session{UserID: "op-1", Token: "token"}
}

func TestListFlatView(t *testing.T) {
	source := &mockConflictSource{records: []models.ConflictRecord{
		roomConflict(1, "E06", "2025-08-19", "08:30", "09:30", 3, 4),
	}}
	svc := newTestConflictService(source, &mockEventMutator{})

	resp, err := svc.List(context.Background(), testSession(), dto.ConflictQuery{})
	require.NoError(t, err)
	assert.Len(t, resp.Conflicts, 1)
	assert.Nil(t, resp.Groups)
	assert.Equal(t, 1, resp.Summary.Total)
}

func TestListGroupedViewAnnotates(t *testing.T) {
	source := &mockConflictSource{records: []models.ConflictRecord{
		roomConflict(1, "E06", "2025-08-19", "08:30", "09:30", 3, 4),
		roomConflict(2, "E06", "2025-08-19", "08:30", "09:30", 4, 3),
	}}
	svc := newTestConflictService(source, &mockEventMutator{})

	resp, err := svc.List(context.Background(), testSession(), dto.ConflictQuery{Grouped: true})
	require.NoError(t, err)
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, "E06 conflict between 2 events", resp.Groups[0].Description)
	assert.Contains(t, resp.Groups[0].Suggestions, "Contact administrator for assistance")
}

func TestListSearchFiltersBeforeGrouping(t *testing.T) {
	source := &mockConflictSource{records: []models.ConflictRecord{
		roomConflict(1, "E06", "2025-08-19", "08:30", "09:30", 3, 4),
		roomConflict(2, "E07", "2025-08-19", "08:30", "09:30", 5, 6),
		teacherConflict(3, "Prof Smith", "2025-08-20", "10:00", "11:00", 7, 8),
	}}
	svc := newTestConflictService(source, &mockEventMutator{})

	resp, err := svc.List(context.Background(), testSession(), dto.ConflictQuery{Search: "e06", Grouped: true})
	require.NoError(t, err)
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, "E06", resp.Groups[0].Resource)
	assert.Equal(t, 1, resp.Summary.Total)

	resp, err = svc.List(context.Background(), testSession(), dto.ConflictQuery{Search: "smith"})
	require.NoError(t, err)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, models.ConflictTypeTeacher, resp.Conflicts[0].ConflictType)
}

func TestListServesFromCache(t *testing.T) {
	source := &mockConflictSource{records: []models.ConflictRecord{
		roomConflict(1, "E06", "2025-08-19", "08:30", "09:30", 3, 4),
	}}
	svc := newCachedConflictService(source, &mockEventMutator{}, &memoryCacheStore{})

	first, err := svc.List(context.Background(), testSession(), dto.ConflictQuery{})
	require.NoError(t, err)
	second, err := svc.List(context.Background(), testSession(), dto.ConflictQuery{Grouped: true})
	require.NoError(t, err)

	assert.Equal(t, 1, source.listCalls)
	assert.Equal(t, first.Summary, second.Summary)
	assert.Len(t, second.Groups, 1)
}

func TestDetectInvalidatesListCache(t *testing.T) {
	source := &mockConflictSource{records: []models.ConflictRecord{
		roomConflict(1, "E06", "2025-08-19", "08:30", "09:30", 3, 4),
	}}
	svc := newCachedConflictService(source, &mockEventMutator{}, &memoryCacheStore{})

	_, err := svc.List(context.Background(), testSession(), dto.ConflictQuery{})
	require.NoError(t, err)

	_, err = svc.Detect(context.Background(), testSession())
	require.NoError(t, err)

	_, err = svc.List(context.Background(), testSession(), dto.ConflictQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, source.listCalls)
}

func TestRemedyInvalidatesListCache(t *testing.T) {
	// the re-detect falls back to preview, so only the remedy itself drops
	// the cached list
	source := &mockConflictSource{
		records:   []models.ConflictRecord{roomConflict(1, "E06", "2025-08-19", "08:30", "09:30", 3, 4)},
		detectErr: appErrors.New(appErrors.ErrValidation.Code, http.StatusBadRequest, "duplicate detection"),
	}
	svc := newCachedConflictService(source, &mockEventMutator{}, &memoryCacheStore{})

	_, err := svc.List(context.Background(), testSession(), dto.ConflictQuery{})
	require.NoError(t, err)

	req := dto.RescheduleRequest{Date: "2025-08-20", StartTime: "10:00", EndTime: "11:00"}
	_, err = svc.Reschedule(context.Background(), testSession(), 3, req)
	require.NoError(t, err)

	_, err = svc.List(context.Background(), testSession(), dto.ConflictQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, source.listCalls)
}

func TestDetectSuccess(t *testing.T) {
	source := &mockConflictSource{detected: []models.ConflictRecord{
		roomConflict(1, "E06", "2025-08-19", "08:30", "09:30", 3, 4),
	}}
	svc := newTestConflictService(source, &mockEventMutator{})

	result, err := svc.Detect(context.Background(), testSession())
	require.NoError(t, err)
	assert.False(t, result.Preview)
	assert.Len(t, result.Conflicts, 1)
	assert.Equal(t, 0, source.previewCalls)
}

func TestDetectFallsBackToPreviewOnDuplicate(t *testing.T) {
	source := &mockConflictSource{
		detectErr: appErrors.New(appErrors.ErrValidation.Code, http.StatusBadRequest, "duplicate key value violates unique constraint"),
		preview: []models.ConflictRecord{
			roomConflict(1, "E06", "2025-08-19", "08:30", "09:30", 3, 4),
		},
	}
	svc := newTestConflictService(source, &mockEventMutator{})

	result, err := svc.Detect(context.Background(), testSession())
	require.NoError(t, err)
	assert.True(t, result.Preview)
	assert.Len(t, result.Conflicts, 1)
	assert.Equal(t, 1, source.previewCalls)
}

func TestDetectPropagatesOtherErrors(t *testing.T) {
	source := &mockConflictSource{
		detectErr: appErrors.ErrUpstreamUnavailable,
	}
	svc := newTestConflictService(source, &mockEventMutator{})

	_, err := svc.Detect(context.Background(), testSession())
	require.Error(t, err)
	assert.Equal(t, 0, source.previewCalls)
}

func TestRescheduleTriggersRedetect(t *testing.T) {
	source := &mockConflictSource{detected: nil}
	events := &mockEventMutator{}
	svc := newTestConflictService(source, events)

	req := dto.RescheduleRequest{Date: "2025-08-20", StartTime: "10:00", EndTime: "11:00"}
	result, err := svc.Reschedule(context.Background(), testSession(), 3, req)
	require.NoError(t, err)
	assert.Equal(t, req, events.rescheduled[3])
	assert.Equal(t, 1, source.detectCalls)
	assert.Empty(t, result.Conflicts)
}

func TestRescheduleValidatesInput(t *testing.T) {
	events := &mockEventMutator{}
	svc := newTestConflictService(&mockConflictSource{}, events)

	_, err := svc.Reschedule(context.Background(), testSession(), 3, dto.RescheduleRequest{Date: "not-a-date"})
	require.Error(t, err)
	assert.Empty(t, events.rescheduled)
}

func TestChangeRoomTriggersRedetect(t *testing.T) {
	source := &mockConflictSource{}
	events := &mockEventMutator{}
	svc := newTestConflictService(source, events)

	_, err := svc.ChangeRoom(context.Background(), testSession(), 4, dto.ChangeRoomRequest{RoomID: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(7), events.roomChanges[4].RoomID)
	assert.Equal(t, 1, source.detectCalls)
}

func TestDismissHidesGroupForSessionOnly(t *testing.T) {
	source := &mockConflictSource{records: []models.ConflictRecord{
		roomConflict(1, "E06", "2025-08-19", "08:30", "09:30", 3, 4),
	}}
	svc := newTestConflictService(source, &mockEventMutator{})
	session := testSession()

	resp, err := svc.List(context.Background(), session, dto.ConflictQuery{Grouped: true})
	require.NoError(t, err)
	require.Len(t, resp.Groups, 1)

	svc.Dismiss(session, resp.Groups[0].ID)

	resp, err = svc.List(context.Background(), session, dto.ConflictQuery{Grouped: true})
	require.NoError(t, err)
	assert.Empty(t, resp.Groups)

	// another operator still sees the group
	other := models.Session{UserID: "op-2", Token: "other"}
	resp, err = svc.List(context.Background(), other, dto.ConflictQuery{Grouped: true})
	require.NoError(t, err)
	assert.Len(t, resp.Groups, 1)

	svc.Restore(session)
	resp, err = svc.List(context.Background(), session, dto.ConflictQuery{Grouped: true})
	require.NoError(t, err)
	assert.Len(t, resp.Groups, 1)
}
