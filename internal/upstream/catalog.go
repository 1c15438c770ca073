package upstream

import (
	"context"
	"net/http"

	"github.com/campus-ops/reservation-console/internal/models"
)

// CatalogClient fetches the course catalog and room inventory.
type CatalogClient struct {
	*Client
}

func NewCatalogClient(c *Client) *CatalogClient {
	return &CatalogClient{Client: c}
}

func (c *CatalogClient) ListCourses(ctx context.Context, token string) ([]models.Course, error) {
	var courses []models.Course
	if err := c.do(ctx, http.MethodGet, "/courses", token, nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *CatalogClient) ListRooms(ctx context.Context, token string) ([]models.Room, error) {
	var rooms []models.Room
	if err := c.do(ctx, http.MethodGet, "/rooms", token, nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}
