package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-ops/reservation-console/internal/dto"
	"github.com/campus-ops/reservation-console/internal/middleware"
	"github.com/campus-ops/reservation-console/internal/models"
	"github.com/campus-ops/reservation-console/internal/service"
	appErrors "github.com/campus-ops/reservation-console/pkg/errors"
)

type conflictServiceMock struct {
	listResp     *dto.ConflictListResponse
	detectResp   *dto.DetectResponse
	rescheduled  map[int64]dto.RescheduleRequest
	roomChanged  map[int64]dto.ChangeRoomRequest
	dismissedIDs []string
	restored     bool
	err          error
}

func (m *conflictServiceMock) List(ctx context.Context, session models.Session, query dto.ConflictQuery) (*dto.ConflictListResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.listResp, nil
}

func (m *conflictServiceMock) Detect(ctx context.Context, session models.Session) (*dto.DetectResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.detectResp, nil
}

func (m *conflictServiceMock) Reschedule(ctx context.Context, session models.Session, eventID int64, req dto.RescheduleRequest) (*dto.DetectResponse, error) {
	if m.rescheduled == nil {
		m.rescheduled = make(map[int64]dto.RescheduleRequest)
	}
	m.rescheduled[eventID] = req
	return m.detectResp, nil
}

func (m *conflictServiceMock) ChangeRoom(ctx context.Context, session models.Session, eventID int64, req dto.ChangeRoomRequest) (*dto.DetectResponse, error) {
	if m.roomChanged == nil {
		m.roomChanged = make(map[int64]dto.ChangeRoomRequest)
	}
	m.roomChanged[eventID] = req
	return m.detectResp, nil
}

func (m *conflictServiceMock) Rooms(ctx context.Context, session models.Session) ([]models.Room, error) {
	return []models.Room{{ID: 1, Name: "E06", Capacity: 40}}, nil
}

func (m *conflictServiceMock) Dismiss(session models.Session, groupID string) {
	m.dismissedIDs = append(m.dismissedIDs, groupID)
}

func (m *conflictServiceMock) Restore(session models.Session) {
	m.restored = true
}

type exporterMock struct {
	format service.ExportFormat
}

func (m *exporterMock) ConflictReport(ctx context.Context, session models.Session, format service.ExportFormat) (*service.ExportArtifact, error) {
	m.format = format
	if format != service.ExportFormatCSV && format != service.ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
	return &service.ExportArtifact{Filename: "report.csv", ContentType: "text/csv", Content: []byte("Type\n")}, nil
}

func authedContext(t *testing.T, w *httptest.ResponseRecorder, method, target string, body []byte) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	c.Request = req
	claims := &models.JWTClaims{UserID: "op-1", Role: models.RoleAdmin}
	c.Set(middleware.ContextUserKey, claims)
	c.Set(middleware.ContextSessionKey, models.SessionFromClaims(claims, "token"))
	return c
}

func TestConflictHandlerListRequiresSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewConflictHandler(&conflictServiceMock{}, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/conflicts", nil)

	h.List(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestConflictHandlerList(t *testing.T) {
	mock := &conflictServiceMock{listResp: &dto.ConflictListResponse{
		Summary: models.ConflictSummary{Room: 1, Total: 1},
	}}
	h := NewConflictHandler(mock, nil)
	w := httptest.NewRecorder()
	c := authedContext(t, w, http.MethodGet, "/conflicts?grouped=true", nil)

	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestConflictHandlerDetect(t *testing.T) {
	mock := &conflictServiceMock{detectResp: &dto.DetectResponse{Preview: true}}
	h := NewConflictHandler(mock, nil)
	w := httptest.NewRecorder()
	c := authedContext(t, w, http.MethodPost, "/conflicts/detect", nil)

	h.Detect(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"preview":true`)
}

func TestConflictHandlerRescheduleInvalidID(t *testing.T) {
	h := NewConflictHandler(&conflictServiceMock{}, nil)
	w := httptest.NewRecorder()
	c := authedContext(t, w, http.MethodPut, "/conflicts/events/nope/reschedule", []byte(`{}`))
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	h.Reschedule(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConflictHandlerReschedule(t *testing.T) {
	mock := &conflictServiceMock{detectResp: &dto.DetectResponse{}}
	h := NewConflictHandler(mock, nil)
	w := httptest.NewRecorder()
	payload, _ := json.Marshal(dto.RescheduleRequest{Date: "2025-08-20", StartTime: "10:00", EndTime: "11:00"})
	c := authedContext(t, w, http.MethodPut, "/conflicts/events/3/reschedule", payload)
	c.Params = gin.Params{{Key: "id", Value: "3"}}

	h.Reschedule(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2025-08-20", mock.rescheduled[3].Date)
}

func TestConflictHandlerChangeRoom(t *testing.T) {
	mock := &conflictServiceMock{detectResp: &dto.DetectResponse{}}
	h := NewConflictHandler(mock, nil)
	w := httptest.NewRecorder()
	payload, _ := json.Marshal(dto.ChangeRoomRequest{RoomID: 9})
	c := authedContext(t, w, http.MethodPut, "/conflicts/events/4/change-room", payload)
	c.Params = gin.Params{{Key: "id", Value: "4"}}

	h.ChangeRoom(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(9), mock.roomChanged[4].RoomID)
}

func TestConflictHandlerDismissAndRestore(t *testing.T) {
	mock := &conflictServiceMock{}
	h := NewConflictHandler(mock, nil)

	w := httptest.NewRecorder()
	c := authedContext(t, w, http.MethodPost, "/conflicts/groups/abc/dismiss", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.Dismiss(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"abc"}, mock.dismissedIDs)

	w = httptest.NewRecorder()
	c = authedContext(t, w, http.MethodPost, "/conflicts/groups/restore", nil)
	h.Restore(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, mock.restored)
}

func TestConflictHandlerExport(t *testing.T) {
	exporter := &exporterMock{}
	h := NewConflictHandler(&conflictServiceMock{}, exporter)
	w := httptest.NewRecorder()
	c := authedContext(t, w, http.MethodGet, "/conflicts/export?format=csv", nil)

	h.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.ExportFormatCSV, exporter.format)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "report.csv")
}

func TestConflictHandlerExportDisabled(t *testing.T) {
	h := NewConflictHandler(&conflictServiceMock{}, nil)
	w := httptest.NewRecorder()
	c := authedContext(t, w, http.MethodGet, "/conflicts/export", nil)

	h.Export(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}
