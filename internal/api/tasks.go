package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/octaltask/octaltask/internal/models"
)

// The backend stores due dates as full instants. Outgoing calendar dates are
// pinned to end of day in UTC+7; incoming instants are kept verbatim.
var dueZone = time.FixedZone("UTC+7", 7*60*60)

// NormalizeDue converts a calendar date (2006-01-02) to the end-of-day
// instant the backend expects. Values that already parse as instants pass
// through unchanged.
func NormalizeDue(date string) (string, error) {
	if _, err := time.Parse(time.RFC3339, date); err == nil {
		return date, nil
	}
	d, err := time.ParseInLocation("2006-01-02", date, dueZone)
	if err != nil {
		return "", fmt.Errorf("api: bad due date %q: %w", date, err)
	}
	eod := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, dueZone)
	return eod.Format(time.RFC3339), nil
}

// taskPayload is the wire form of a task create/update.
type taskPayload struct {
	Title     string  `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	DueDate   *string `json:"dueDate,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	Starred   *bool   `json:"starred,omitempty"`
	ListID    *string `json:"listId,omitempty"`
}

func taskToPayload(t models.Task) (taskPayload, error) {
	p := taskPayload{
		Title:     t.Title,
		Completed: &t.Completed,
		Notes:     &t.Notes,
		Starred:   &t.Starred,
		ListID:    t.ListID,
	}
	if t.DueDate != nil {
		due, err := NormalizeDue(*t.DueDate)
		if err != nil {
			return taskPayload{}, err
		}
		p.DueDate = &due
	}
	return p, nil
}

// CreateTask creates a task on the backend and returns the stored record.
func (c *Client) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	p, err := taskToPayload(t)
	if err != nil {
		return models.Task{}, err
	}
	var out models.Task
	err = c.do(ctx, http.MethodPost, "/tasks", p, &out)
	return out, err
}

// GetTasks fetches all tasks visible to the current user.
func (c *Client) GetTasks(ctx context.Context) ([]models.Task, error) {
	var out []models.Task
	err := c.do(ctx, http.MethodGet, "/tasks", nil, &out)
	return out, err
}

// UpdateTask patches a task on the backend.
func (c *Client) UpdateTask(ctx context.Context, t models.Task) (models.Task, error) {
	p, err := taskToPayload(t)
	if err != nil {
		return models.Task{}, err
	}
	var out models.Task
	err = c.do(ctx, http.MethodPatch, "/tasks/"+t.ID, p, &out)
	return out, err
}

// DeleteTask removes a task on the backend.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil)
}

// CreateComment records a comment on the backend and returns the confirmed
// record with its server-assigned id.
func (c *Client) CreateComment(ctx context.Context, taskID, content string) (models.Comment, error) {
	in := struct {
		Content string `json:"content"`
	}{Content: content}
	var out models.Comment
	err := c.do(ctx, http.MethodPost, "/tasks/"+taskID+"/comments", in, &out)
	return out, err
}

// DeleteComment removes a comment on the backend.
func (c *Client) DeleteComment(ctx context.Context, taskID, commentID string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+taskID+"/comments/"+commentID, nil, nil)
}
