package state

import (
	"context"

	"github.com/octaltask/octaltask/internal/identity"
	"github.com/octaltask/octaltask/internal/models"
)

// Collaborator failures in this file propagate to the caller unchanged:
// the view layer owns user-facing messaging and there are no retries.
//
// Each operation snapshots the entity's version before the collaborator
// call and refuses to land afterwards if the entity was deleted or changed
// in between. A slow share can therefore never resurrect a deleted record;
// it fails with ErrStale instead.

func upsertShared(shared []models.SharedUser, su models.SharedUser) []models.SharedUser {
	for i := range shared {
		if shared[i].Email == su.Email {
			shared[i] = su
			return shared
		}
	}
	return append(shared, su)
}

func removeShared(shared []models.SharedUser, userID string) []models.SharedUser {
	// fresh backing array: snapshots handed out earlier may still point at
	// the old one
	out := make([]models.SharedUser, 0, len(shared))
	for _, su := range shared {
		if su.ID != userID {
			out = append(out, su)
		}
	}
	return out
}

// ShareTask grants email access to the task with the given role.
func (c *Container) ShareTask(ctx context.Context, taskID, email string, role models.Role) (models.Task, error) {
	c.mu.Lock()
	if c.taskIndex(taskID) < 0 {
		c.mu.Unlock()
		return models.Task{}, ErrNotFound
	}
	v := c.versions[taskID]
	c.mu.Unlock()

	su, err := c.identity.ShareWithUser(ctx, taskID, identity.ItemTask, email, role)
	if err != nil {
		return models.Task{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.taskIndex(taskID)
	if i < 0 || c.versions[taskID] != v {
		return models.Task{}, ErrStale
	}
	c.tasks[i].SharedWith = upsertShared(c.tasks[i].SharedWith, su)
	c.tasks[i].UpdatedAt = models.Timestamp()
	c.versions[taskID]++
	return c.tasks[i].Clone(), c.persistTasks()
}

// ShareList grants email access to the list with the given role and marks
// the list shared.
func (c *Container) ShareList(ctx context.Context, listID, email string, role models.Role) (models.TaskList, error) {
	c.mu.Lock()
	if c.listIndex(listID) < 0 {
		c.mu.Unlock()
		return models.TaskList{}, ErrNotFound
	}
	v := c.versions[listID]
	c.mu.Unlock()

	su, err := c.identity.ShareWithUser(ctx, listID, identity.ItemList, email, role)
	if err != nil {
		return models.TaskList{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.listIndex(listID)
	if i < 0 || c.versions[listID] != v {
		return models.TaskList{}, ErrStale
	}
	c.lists[i].SharedWith = upsertShared(c.lists[i].SharedWith, su)
	c.lists[i].IsShared = true
	c.lists[i].UpdatedAt = models.Timestamp()
	c.versions[listID]++
	return c.lists[i].Clone(), c.persistLists()
}

// UpdateTaskPermission changes a collaborator's role on a task.
func (c *Container) UpdateTaskPermission(ctx context.Context, taskID, userID string, role models.Role) (models.Task, error) {
	c.mu.Lock()
	if c.taskIndex(taskID) < 0 {
		c.mu.Unlock()
		return models.Task{}, ErrNotFound
	}
	v := c.versions[taskID]
	c.mu.Unlock()

	if err := c.identity.UpdateUserPermission(ctx, taskID, identity.ItemTask, userID, role); err != nil {
		return models.Task{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.taskIndex(taskID)
	if i < 0 || c.versions[taskID] != v {
		return models.Task{}, ErrStale
	}
	for j := range c.tasks[i].SharedWith {
		if c.tasks[i].SharedWith[j].ID == userID {
			c.tasks[i].SharedWith[j].Role = role
		}
	}
	c.tasks[i].UpdatedAt = models.Timestamp()
	c.versions[taskID]++
	return c.tasks[i].Clone(), c.persistTasks()
}

// UpdateListPermission changes a collaborator's role on a list.
func (c *Container) UpdateListPermission(ctx context.Context, listID, userID string, role models.Role) (models.TaskList, error) {
	c.mu.Lock()
	if c.listIndex(listID) < 0 {
		c.mu.Unlock()
		return models.TaskList{}, ErrNotFound
	}
	v := c.versions[listID]
	c.mu.Unlock()

	if err := c.identity.UpdateUserPermission(ctx, listID, identity.ItemList, userID, role); err != nil {
		return models.TaskList{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.listIndex(listID)
	if i < 0 || c.versions[listID] != v {
		return models.TaskList{}, ErrStale
	}
	for j := range c.lists[i].SharedWith {
		if c.lists[i].SharedWith[j].ID == userID {
			c.lists[i].SharedWith[j].Role = role
		}
	}
	c.lists[i].UpdatedAt = models.Timestamp()
	c.versions[listID]++
	return c.lists[i].Clone(), c.persistLists()
}

// RemoveTaskUser revokes a collaborator's access to a task.
func (c *Container) RemoveTaskUser(ctx context.Context, taskID, userID string) (models.Task, error) {
	c.mu.Lock()
	if c.taskIndex(taskID) < 0 {
		c.mu.Unlock()
		return models.Task{}, ErrNotFound
	}
	v := c.versions[taskID]
	c.mu.Unlock()

	if err := c.identity.RemoveUserAccess(ctx, taskID, identity.ItemTask, userID); err != nil {
		return models.Task{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.taskIndex(taskID)
	if i < 0 || c.versions[taskID] != v {
		return models.Task{}, ErrStale
	}
	c.tasks[i].SharedWith = removeShared(c.tasks[i].SharedWith, userID)
	c.tasks[i].UpdatedAt = models.Timestamp()
	c.versions[taskID]++
	return c.tasks[i].Clone(), c.persistTasks()
}

// RemoveListUser revokes a collaborator's access to a list. Removing the
// last collaborator flips the list back to unshared.
func (c *Container) RemoveListUser(ctx context.Context, listID, userID string) (models.TaskList, error) {
	c.mu.Lock()
	if c.listIndex(listID) < 0 {
		c.mu.Unlock()
		return models.TaskList{}, ErrNotFound
	}
	v := c.versions[listID]
	c.mu.Unlock()

	if err := c.identity.RemoveUserAccess(ctx, listID, identity.ItemList, userID); err != nil {
		return models.TaskList{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.listIndex(listID)
	if i < 0 || c.versions[listID] != v {
		return models.TaskList{}, ErrStale
	}
	c.lists[i].SharedWith = removeShared(c.lists[i].SharedWith, userID)
	c.lists[i].IsShared = len(c.lists[i].SharedWith) > 0
	c.lists[i].UpdatedAt = models.Timestamp()
	c.versions[listID]++
	return c.lists[i].Clone(), c.persistLists()
}
