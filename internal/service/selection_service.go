package service

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-ops/reservation-console/internal/dto"
	"github.com/campus-ops/reservation-console/internal/models"
	appErrors "github.com/campus-ops/reservation-console/pkg/errors"
)

type courseLister interface {
	ListCourses(ctx context.Context, token string) ([]models.Course, error)
}

type scheduleSubmitter interface {
	CreateStructured(ctx context.Context, token string, req dto.StructuredScheduleRequest) (*models.ScheduleResult, error)
	CreateProfessional(ctx context.Context, token string, courseIDs []int64) (*models.ScheduleResult, error)
}

// defaultStudentCount seeds entries whose course carries no minimum capacity.
const defaultStudentCount = 20

// selectionBoard is one operator's staged selection. Entries keep catalog
// order for the whole board lifetime; filtering never reorders or drops them.
type selectionBoard struct {
	id            string
	weekStartDate string
	entries       []models.CourseSelection
	expiresAt     time.Time
}

// boardPreset seeds the first N catalog entries with sequential priorities.
type boardPreset struct {
	name string
	size int
}

var presets = []boardPreset{
	{name: "core-subjects", size: 5},
	{name: "small-groups", size: 3},
	{name: "full-catalog", size: 0},
}

// SelectionServiceConfig tunes board retention.
type SelectionServiceConfig struct {
	BoardTTL time.Duration
}

// SelectionService maintains in-memory selection boards and turns a finalized
// board into a scheduling request.
type SelectionService struct {
	catalog   courseLister
	scheduler scheduleSubmitter
	validate  *validator.Validate
	logger    *zap.Logger
	cfg       SelectionServiceConfig

	mu     sync.RWMutex
	boards map[string]*selectionBoard
}

// NewSelectionService constructs the service with defaults.
func NewSelectionService(catalog courseLister, scheduler scheduleSubmitter, validate *validator.Validate, logger *zap.Logger, cfg SelectionServiceConfig) *SelectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cfg.BoardTTL <= 0 {
		cfg.BoardTTL = 2 * time.Hour
	}
	return &SelectionService{
		catalog:   catalog,
		scheduler: scheduler,
		validate:  validate,
		logger:    logger,
		cfg:       cfg,
		boards:    make(map[string]*selectionBoard),
	}
}

// CreateBoard seeds a fresh board from the course catalog. Every course
// starts deselected at priority 1 with the student count defaulted to the
// course minimum capacity.
func (s *SelectionService) CreateBoard(ctx context.Context, session models.Session, req dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid board request")
	}

	courses, err := s.catalog.ListCourses(ctx, session.Token)
	if err != nil {
		return nil, err
	}

	board := &selectionBoard{
		id:            uuid.NewString(),
		weekStartDate: req.WeekStartDate,
		entries:       make([]models.CourseSelection, 0, len(courses)),
		expiresAt:     time.Now().Add(s.cfg.BoardTTL),
	}
	for _, course := range courses {
		board.entries = append(board.entries, models.CourseSelection{
			Course:       course,
			CourseID:     course.ID,
			Selected:     false,
			Priority:     1,
			StudentCount: seedStudentCount(course),
		})
	}

	s.mu.Lock()
	s.pruneLocked(time.Now())
	s.boards[board.id] = board
	s.mu.Unlock()

	return s.boardResponse(board), nil
}

// GetBoard returns the full board state.
func (s *SelectionService) GetBoard(boardID string) (*dto.BoardResponse, error) {
	board, err := s.lockedBoard(boardID)
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	return s.boardResponse(board), nil
}

// Filter returns the entries currently visible under the criteria. The board
// itself is untouched: filtering changes visibility, never membership.
func (s *SelectionService) Filter(boardID string, criteria dto.FilterCriteria) ([]models.CourseSelection, error) {
	board, err := s.lockedBoard(boardID)
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	out := make([]models.CourseSelection, 0, len(board.entries))
	for _, entry := range board.entries {
		if matchesCriteria(entry.Course, criteria) {
			out = append(out, entry)
		}
	}
	return out, nil
}

// UpdateEntry patches one entry's selection, priority or student count.
func (s *SelectionService) UpdateEntry(boardID string, courseID int64, req dto.UpdateEntryRequest) (*dto.BoardResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid entry update")
	}

	board, err := s.lockedBoard(boardID)
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	for i := range board.entries {
		if board.entries[i].CourseID != courseID {
			continue
		}
		if req.Selected != nil {
			board.entries[i].Selected = *req.Selected
		}
		if req.Priority != nil {
			board.entries[i].Priority = *req.Priority
		}
		if req.StudentCount != nil {
			board.entries[i].StudentCount = *req.StudentCount
		}
		return s.boardResponse(board), nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "course not on board")
}

// SelectAllFiltered marks every entry passing the criteria as selected.
// Entries outside the filter keep their current state.
func (s *SelectionService) SelectAllFiltered(boardID string, criteria dto.FilterCriteria) (*dto.BoardResponse, error) {
	board, err := s.lockedBoard(boardID)
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	for i := range board.entries {
		if matchesCriteria(board.entries[i].Course, criteria) {
			board.entries[i].Selected = true
		}
	}
	return s.boardResponse(board), nil
}

// DeselectAll clears every selection regardless of any filter.
func (s *SelectionService) DeselectAll(boardID string) (*dto.BoardResponse, error) {
	board, err := s.lockedBoard(boardID)
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	for i := range board.entries {
		board.entries[i].Selected = false
	}
	return s.boardResponse(board), nil
}

// ApplyBulkPriority assigns consecutive priorities to the selected entries in
// board order, starting at req.Start. The result is collision-free among the
// entries it touches.
func (s *SelectionService) ApplyBulkPriority(boardID string, req dto.BulkPriorityRequest) (*dto.BoardResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk priority request")
	}

	board, err := s.lockedBoard(boardID)
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	next := req.Start
	for i := range board.entries {
		if board.entries[i].Selected {
			board.entries[i].Priority = next
			next++
		}
	}
	return s.boardResponse(board), nil
}

// ShufflePriorities reassigns a random permutation of 1..N over the N
// selected entries.
func (s *SelectionService) ShufflePriorities(boardID string) (*dto.BoardResponse, error) {
	board, err := s.lockedBoard(boardID)
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	selected := make([]int, 0, len(board.entries))
	for i := range board.entries {
		if board.entries[i].Selected {
			selected = append(selected, i)
		}
	}
	perm := rand.Perm(len(selected))
	for ordinal, idx := range selected {
		board.entries[idx].Priority = perm[ordinal] + 1
	}
	return s.boardResponse(board), nil
}

// ApplyPreset clears the board and selects the first N catalog entries with
// sequential priorities and reset student counts.
func (s *SelectionService) ApplyPreset(boardID string, req dto.PresetRequest) (*dto.BoardResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid preset request")
	}

	var preset *boardPreset
	for i := range presets {
		if presets[i].name == req.Name {
			preset = &presets[i]
			break
		}
	}
	if preset == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown preset")
	}

	board, err := s.lockedBoard(boardID)
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	size := preset.size
	if size <= 0 || size > len(board.entries) {
		size = len(board.entries)
	}
	for i := range board.entries {
		if i < size {
			board.entries[i].Selected = true
			board.entries[i].Priority = i + 1
			board.entries[i].StudentCount = seedStudentCount(board.entries[i].Course)
		} else {
			board.entries[i].Selected = false
		}
	}
	return s.boardResponse(board), nil
}

// Validate checks a board for submission readiness. Failures surface in a
// fixed order: missing week date, then empty selection, then duplicate
// priorities.
func (s *SelectionService) Validate(boardID string, weekStartDate string) error {
	board, err := s.lockedBoard(boardID)
	if err != nil {
		return err
	}
	defer s.mu.Unlock()

	if weekStartDate == "" {
		weekStartDate = board.weekStartDate
	}
	return validateBoard(board.entries, weekStartDate)
}

// Submit validates the board and runs the scheduler. Structured mode sends
// priorities and student counts; professional mode sends the bare course id
// list. A result reporting failed courses is still a successful submission.
func (s *SelectionService) Submit(ctx context.Context, session models.Session, boardID string, req dto.SubmitRequest) (*models.ScheduleResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid submit request")
	}

	board, err := s.lockedBoard(boardID)
	if err != nil {
		return nil, err
	}

	weekStartDate := req.WeekStartDate
	if weekStartDate == "" {
		weekStartDate = board.weekStartDate
	}
	if verr := validateBoard(board.entries, weekStartDate); verr != nil {
		s.mu.Unlock()
		return nil, verr
	}

	selected := make([]models.CourseSelection, 0, len(board.entries))
	for _, entry := range board.entries {
		if entry.Selected {
			selected = append(selected, entry)
		}
	}
	s.mu.Unlock()

	if req.Mode == dto.SubmitModeProfessional {
		ids := make([]int64, 0, len(selected))
		for _, entry := range selected {
			ids = append(ids, entry.CourseID)
		}
		return s.scheduler.CreateProfessional(ctx, session.Token, ids)
	}

	courses := make([]dto.CourseScheduleEntry, 0, len(selected))
	for _, entry := range selected {
		courses = append(courses, dto.CourseScheduleEntry{
			CourseID:     entry.CourseID,
			Priority:     entry.Priority,
			StudentCount: entry.StudentCount,
		})
	}
	return s.scheduler.CreateStructured(ctx, session.Token, dto.StructuredScheduleRequest{
		WeekStartDate: weekStartDate,
		Courses:       courses,
	})
}

// DeleteBoard discards a board before its TTL.
func (s *SelectionService) DeleteBoard(boardID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.boards, boardID)
}

// lockedBoard fetches a live board under the write lock. On success the lock
// is held and the caller must release it; on error it is already released.
func (s *SelectionService) lockedBoard(boardID string) (*selectionBoard, error) {
	s.mu.Lock()
	board, ok := s.boards[boardID]
	if !ok || time.Now().After(board.expiresAt) {
		if ok {
			delete(s.boards, boardID)
		}
		s.mu.Unlock()
		return nil, appErrors.ErrBoardExpired
	}
	board.expiresAt = time.Now().Add(s.cfg.BoardTTL)
	return board, nil
}

// pruneLocked drops expired boards. Callers must hold the write lock.
func (s *SelectionService) pruneLocked(now time.Time) {
	for id, board := range s.boards {
		if now.After(board.expiresAt) {
			delete(s.boards, id)
		}
	}
}

func (s *SelectionService) boardResponse(board *selectionBoard) *dto.BoardResponse {
	entries := make([]models.CourseSelection, len(board.entries))
	copy(entries, board.entries)
	return &dto.BoardResponse{
		BoardID:       board.id,
		WeekStartDate: board.weekStartDate,
		Entries:       entries,
		Summary:       SummarizeSelection(entries),
	}
}

// SummarizeSelection aggregates the selected entries for the pre-submit view.
func SummarizeSelection(entries []models.CourseSelection) models.SelectionSummary {
	summary := models.SelectionSummary{TotalCourses: len(entries)}
	subjects := make(map[string]struct{})
	seen := make(map[int]int)

	for _, entry := range entries {
		if !entry.Selected {
			continue
		}
		summary.SelectedCount++
		summary.SessionsPerWeek += entry.Course.SessionsPerWeek
		summary.TotalStudents += entry.StudentCount
		subjects[entry.Course.Subject] = struct{}{}
		seen[entry.Priority]++
	}
	summary.DistinctSubjects = len(subjects)

	for _, entry := range entries {
		if entry.Selected && seen[entry.Priority] > 1 {
			summary.DuplicatePriorities = appendUniquePriority(summary.DuplicatePriorities, entry.Priority)
		}
	}
	return summary
}

func appendUniquePriority(list []int, p int) []int {
	for _, existing := range list {
		if existing == p {
			return list
		}
	}
	return append(list, p)
}

// validateBoard enforces the submission invariants in order.
func validateBoard(entries []models.CourseSelection, weekStartDate string) error {
	if weekStartDate == "" {
		return appErrors.Clone(appErrors.ErrValidation, "week start date is required")
	}

	selectedCount := 0
	priorities := make(map[int]struct{})
	duplicate := false
	for _, entry := range entries {
		if !entry.Selected {
			continue
		}
		selectedCount++
		if _, exists := priorities[entry.Priority]; exists {
			duplicate = true
		}
		priorities[entry.Priority] = struct{}{}
	}

	if selectedCount == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "at least one course must be selected")
	}
	if duplicate {
		return appErrors.Clone(appErrors.ErrValidation, "each course must have a unique priority")
	}
	return nil
}

func seedStudentCount(course models.Course) int {
	if course.MinCapacity > 0 {
		return course.MinCapacity
	}
	return defaultStudentCount
}

func matchesCriteria(course models.Course, c dto.FilterCriteria) bool {
	if c.Subject != "" && c.Subject != dto.FilterAll && course.Subject != c.Subject {
		return false
	}
	if course.MinCapacity < c.MinCapacity {
		return false
	}
	if c.MaxCapacity > 0 && course.MaxCapacity > 0 && course.MaxCapacity > c.MaxCapacity {
		return false
	}
	if c.DurationHours > 0 && course.DurationHours != c.DurationHours {
		return false
	}
	if c.SessionsPerWeek > 0 && course.SessionsPerWeek != c.SessionsPerWeek {
		return false
	}
	if c.NameContains != "" && !strings.Contains(strings.ToLower(course.Name), strings.ToLower(c.NameContains)) {
		return false
	}
	return true
}
