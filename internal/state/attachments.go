package state

import (
	"context"
	"errors"
	"io"

	"github.com/octaltask/octaltask/internal/models"
)

// ErrNoUploader means AddAttachment was called without an upload
// collaborator wired in.
var ErrNoUploader = errors.New("no upload collaborator configured")

// AddAttachment delegates the file contents to the upload collaborator and
// keeps only the returned metadata. Persisted immediately, like comments.
func (c *Container) AddAttachment(ctx context.Context, taskID, fileName string, contents io.Reader) (models.Attachment, error) {
	if c.uploader == nil {
		return models.Attachment{}, ErrNoUploader
	}

	c.mu.Lock()
	if c.taskIndex(taskID) < 0 {
		c.mu.Unlock()
		return models.Attachment{}, ErrNotFound
	}
	v := c.versions[taskID]
	uploader := c.actor().ID
	c.mu.Unlock()

	att, err := c.uploader.UploadAttachment(ctx, taskID, fileName, contents)
	if err != nil {
		return models.Attachment{}, err
	}
	if att.UploaderID == "" {
		att.UploaderID = uploader
	}
	if att.TaskID == "" {
		att.TaskID = taskID
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.taskIndex(taskID)
	if i < 0 || c.versions[taskID] != v {
		return models.Attachment{}, ErrStale
	}
	c.tasks[i].Attachments = append(c.tasks[i].Attachments, att)
	c.tasks[i].UpdatedAt = models.Timestamp()
	c.versions[taskID]++
	return att, c.persistTasks()
}

// RemoveAttachment drops attachment metadata from its task. The stored file
// is the backend's to clean up.
func (c *Container) RemoveAttachment(taskID, attachmentID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.taskIndex(taskID)
	if i < 0 {
		return ErrNotFound
	}
	as := c.tasks[i].Attachments
	for j := range as {
		if as[j].ID == attachmentID {
			c.tasks[i].Attachments = append(as[:j], as[j+1:]...)
			c.tasks[i].UpdatedAt = models.Timestamp()
			c.versions[taskID]++
			return c.persistTasks()
		}
	}
	return ErrNotFound
}
