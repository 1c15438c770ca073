package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/campus-ops/reservation-console/internal/dto"
	"github.com/campus-ops/reservation-console/internal/models"
)

// EventClient calls the backend event mutation endpoints used as conflict
// remedies.
type EventClient struct {
	*Client
}

func NewEventClient(c *Client) *EventClient {
	return &EventClient{Client: c}
}

// Reschedule moves an event to a new date and time window.
func (c *EventClient) Reschedule(ctx context.Context, token string, eventID int64, req dto.RescheduleRequest) (*models.Event, error) {
	var event models.Event
	path := fmt.Sprintf("/events/%d/reschedule", eventID)
	if err := c.do(ctx, http.MethodPut, path, token, req, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// ChangeRoom moves an event into a different room.
func (c *EventClient) ChangeRoom(ctx context.Context, token string, eventID int64, req dto.ChangeRoomRequest) (*models.Event, error) {
	var event models.Event
	path := fmt.Sprintf("/events/%d/change-room", eventID)
	if err := c.do(ctx, http.MethodPut, path, token, req, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
