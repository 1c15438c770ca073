package upstream

import (
	"context"
	"net/http"

	"github.com/campus-ops/reservation-console/internal/models"
)

// ConflictClient calls the backend conflict endpoints.
type ConflictClient struct {
	*Client
}

func NewConflictClient(c *Client) *ConflictClient {
	return &ConflictClient{Client: c}
}

// List returns the currently persisted conflicts.
func (c *ConflictClient) List(ctx context.Context, token string) ([]models.ConflictRecord, error) {
	var records []models.ConflictRecord
	if err := c.do(ctx, http.MethodGet, "/conflicts", token, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Detect runs a persisting detection pass. The backend rejects the pass with
// a duplicate error when identical results are already stored; see
// IsDuplicateDetection.
func (c *ConflictClient) Detect(ctx context.Context, token string) ([]models.ConflictRecord, error) {
	var records []models.ConflictRecord
	if err := c.do(ctx, http.MethodPost, "/conflicts/detect", token, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Preview runs a read-only detection pass that persists nothing.
func (c *ConflictClient) Preview(ctx context.Context, token string) ([]models.ConflictRecord, error) {
	var records []models.ConflictRecord
	if err := c.do(ctx, http.MethodGet, "/conflicts/preview", token, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}
