package state

import (
	"context"

	"github.com/google/uuid"
	"github.com/octaltask/octaltask/internal/models"
)

// AddComment appends a comment to the task, stamped with the current user
// (or the anonymous placeholder). The insert is optimistic: the comment is
// visible and persisted immediately with a tentative id and Pending set;
// once the collaborator confirms, the tentative id is swapped for the
// confirmed one. On collaborator failure the tentative comment is removed
// again and the failure is returned unchanged.
func (c *Container) AddComment(ctx context.Context, taskID, content string) (models.Comment, error) {
	c.mu.Lock()
	i := c.taskIndex(taskID)
	if i < 0 {
		c.mu.Unlock()
		return models.Comment{}, ErrNotFound
	}

	author := c.actor()
	cm := models.Comment{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		UserID:    author.ID,
		UserName:  author.Name,
		UserPhoto: author.Photo,
		Content:   content,
		CreatedAt: models.Timestamp(),
		Pending:   c.comments != nil,
	}
	c.tasks[i].Comments = append(c.tasks[i].Comments, cm)
	c.tasks[i].UpdatedAt = models.Timestamp()
	c.commentIndex[cm.ID] = taskID
	c.versions[taskID]++
	persistErr := c.persistTasks()
	c.mu.Unlock()

	if c.comments == nil {
		return cm, persistErr
	}

	confirmed, err := c.comments.CreateComment(ctx, taskID, content)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.removeCommentLocked(cm.ID)
		return models.Comment{}, err
	}

	i = c.taskIndex(taskID)
	if i < 0 {
		// task vanished while the collaborator was confirming; nothing to
		// attach the confirmed record to
		c.logger.Printf("state: task %s deleted during comment confirm", taskID)
		delete(c.commentIndex, cm.ID)
		return models.Comment{}, ErrStale
	}
	swapped := false
	for j := range c.tasks[i].Comments {
		if c.tasks[i].Comments[j].ID == cm.ID {
			c.tasks[i].Comments[j].ID = confirmed.ID
			c.tasks[i].Comments[j].Pending = false
			delete(c.commentIndex, cm.ID)
			c.commentIndex[confirmed.ID] = taskID
			cm = c.tasks[i].Comments[j]
			swapped = true
			break
		}
	}
	if !swapped {
		// tentative comment was deleted while the collaborator was
		// confirming; don't hand back the stale pending record
		c.logger.Printf("state: comment %s removed during confirm", cm.ID)
		delete(c.commentIndex, cm.ID)
		return models.Comment{}, ErrStale
	}
	c.versions[taskID]++
	return cm, c.persistTasks()
}

// DeleteComment removes a comment wherever it lives. A missing id is logged
// and ignored; comment deletion is not worth an error dialog.
func (c *Container) DeleteComment(ctx context.Context, commentID string) error {
	c.mu.Lock()
	taskID, ok := c.commentIndex[commentID]
	if !ok {
		c.mu.Unlock()
		c.logger.Printf("state: delete of unknown comment %s", commentID)
		return nil
	}
	err := c.removeCommentLocked(commentID)
	c.mu.Unlock()
	if err != nil {
		return err
	}

	if c.comments != nil {
		if serr := c.comments.DeleteComment(ctx, taskID, commentID); serr != nil {
			c.logger.Printf("state: backend comment delete %s: %v", commentID, serr)
		}
	}
	return nil
}

// removeCommentLocked drops the comment from its owning task and persists.
// Must hold mu.
func (c *Container) removeCommentLocked(commentID string) error {
	taskID, ok := c.commentIndex[commentID]
	if !ok {
		return nil
	}
	delete(c.commentIndex, commentID)

	i := c.taskIndex(taskID)
	if i < 0 {
		return nil
	}
	cs := c.tasks[i].Comments
	for j := range cs {
		if cs[j].ID == commentID {
			c.tasks[i].Comments = append(cs[:j], cs[j+1:]...)
			break
		}
	}
	c.versions[taskID]++
	return c.persistTasks()
}
