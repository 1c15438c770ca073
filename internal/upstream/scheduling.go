package upstream

import (
	"context"
	"net/http"

	"github.com/campus-ops/reservation-console/internal/dto"
	"github.com/campus-ops/reservation-console/internal/models"
)

// SchedulingClient submits finalized selections to the backend schedulers.
type SchedulingClient struct {
	*Client
}

func NewSchedulingClient(c *Client) *SchedulingClient {
	return &SchedulingClient{Client: c}
}

// CreateStructured runs the standard scheduler with explicit priorities and
// student counts.
func (c *SchedulingClient) CreateStructured(ctx context.Context, token string, req dto.StructuredScheduleRequest) (*models.ScheduleResult, error) {
	var result models.ScheduleResult
	if err := c.do(ctx, http.MethodPost, "/weekly-schedule/create", token, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateProfessional runs the professional scheduler. Its request body is a
// bare JSON array of course ids, not a wrapper object; the scheduler derives
// ordering and counts itself.
func (c *SchedulingClient) CreateProfessional(ctx context.Context, token string, courseIDs []int64) (*models.ScheduleResult, error) {
	var result models.ScheduleResult
	if err := c.do(ctx, http.MethodPost, "/weekly-schedule/create-professional", token, courseIDs, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
