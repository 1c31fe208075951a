package state

import (
	"github.com/octaltask/octaltask/internal/models"
)

// TaskPatch is a partial task update. Nil fields are left alone; the Clear
// flags null out the optional references.
type TaskPatch struct {
	Title     *string
	Completed *bool
	DueDate   *string
	ClearDue  bool
	Notes     *string
	Starred   *bool
	ListID    *string
	ClearList bool
	Subtasks  *[]models.SubTask
}

func (p TaskPatch) apply(t *models.Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.DueDate != nil {
		due := *p.DueDate
		t.DueDate = &due
	}
	if p.ClearDue {
		t.DueDate = nil
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if p.Starred != nil {
		t.Starred = *p.Starred
	}
	if p.ListID != nil {
		id := *p.ListID
		t.ListID = &id
	}
	if p.ClearList {
		t.ListID = nil
	}
	if p.Subtasks != nil {
		t.Subtasks = *p.Subtasks
	}
}

// AddTask creates a task from the given partial, filling in an id, fresh
// timestamps and empty child collections. It accepts whatever it is given;
// the create/edit boundary is where titles get validated, not here.
func (c *Container) AddTask(partial models.Task) (models.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := models.Timestamp()
	t := partial
	t.ID = models.NewID()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.Subtasks = []models.SubTask{}
	t.Comments = []models.Comment{}
	t.Attachments = nil
	t.SharedWith = nil

	c.tasks = append(c.tasks, t)
	c.versions[t.ID]++
	return t.Clone(), c.persistTasks()
}

// UpdateTask merges patch into the task and refreshes its update stamp.
func (c *Container) UpdateTask(id string, patch TaskPatch) (models.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.taskIndex(id)
	if i < 0 {
		return models.Task{}, ErrNotFound
	}
	patch.apply(&c.tasks[i])
	c.tasks[i].UpdatedAt = models.Timestamp()
	c.versions[id]++
	return c.tasks[i].Clone(), c.persistTasks()
}

// DeleteTask removes the task. Deleting an absent id is a no-op, not an
// error.
func (c *Container) DeleteTask(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.taskIndex(id)
	if i < 0 {
		return nil
	}
	for _, cm := range c.tasks[i].Comments {
		delete(c.commentIndex, cm.ID)
	}
	delete(c.versions, id)
	c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
	return c.persistTasks()
}

// Tasks returns a copy of the task collection in insertion order. Copies
// are deep: snapshots stay stable while the collections keep mutating.
func (c *Container) Tasks() []models.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Task, len(c.tasks))
	for i := range c.tasks {
		out[i] = c.tasks[i].Clone()
	}
	return out
}

// TaskByID looks a task up by id.
func (c *Container) TaskByID(id string) (models.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.taskIndex(id)
	if i < 0 {
		return models.Task{}, ErrNotFound
	}
	return c.tasks[i].Clone(), nil
}

// TasksByList returns the tasks whose list reference equals listID.
func (c *Container) TasksByList(listID string) []models.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []models.Task
	for _, t := range c.tasks {
		if t.ListID != nil && *t.ListID == listID {
			out = append(out, t.Clone())
		}
	}
	return out
}
