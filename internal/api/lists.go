package api

import (
	"context"
	"net/http"

	"github.com/octaltask/octaltask/internal/models"
)

type listPayload struct {
	Name  string `json:"name,omitempty"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// CreateList creates a list on the backend and returns the stored record.
func (c *Client) CreateList(ctx context.Context, l models.TaskList) (models.TaskList, error) {
	var out models.TaskList
	err := c.do(ctx, http.MethodPost, "/lists", listPayload{Name: l.Name, Color: l.Color, Icon: l.Icon}, &out)
	return out, err
}

// GetLists fetches all lists visible to the current user.
func (c *Client) GetLists(ctx context.Context) ([]models.TaskList, error) {
	var out []models.TaskList
	err := c.do(ctx, http.MethodGet, "/lists", nil, &out)
	return out, err
}

// UpdateList patches a list on the backend.
func (c *Client) UpdateList(ctx context.Context, l models.TaskList) (models.TaskList, error) {
	var out models.TaskList
	err := c.do(ctx, http.MethodPatch, "/lists/"+l.ID, listPayload{Name: l.Name, Color: l.Color, Icon: l.Icon}, &out)
	return out, err
}

// DeleteList removes a list on the backend.
func (c *Client) DeleteList(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/lists/"+id, nil, nil)
}
