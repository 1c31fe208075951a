package state

import (
	"github.com/octaltask/octaltask/internal/models"
)

// ListPatch is a partial list update. Nil fields are left alone.
type ListPatch struct {
	Name  *string
	Color *string
	Icon  *string
}

func (p ListPatch) apply(l *models.TaskList) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Color != nil {
		l.Color = *p.Color
	}
	if p.Icon != nil {
		l.Icon = *p.Icon
	}
}

// AddList creates a list from the given partial, stamped with the current
// user as owner.
func (c *Container) AddList(partial models.TaskList) (models.TaskList, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := models.Timestamp()
	l := partial
	l.ID = models.NewID()
	l.OwnerID = c.actor().ID
	l.IsShared = false
	l.SharedWith = nil
	l.CreatedAt = now
	l.UpdatedAt = now

	c.lists = append(c.lists, l)
	c.versions[l.ID]++
	return l.Clone(), c.persistLists()
}

// UpdateList merges patch into the list and refreshes its update stamp.
func (c *Container) UpdateList(id string, patch ListPatch) (models.TaskList, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.listIndex(id)
	if i < 0 {
		return models.TaskList{}, ErrNotFound
	}
	patch.apply(&c.lists[i])
	c.lists[i].UpdatedAt = models.Timestamp()
	c.versions[id]++
	return c.lists[i].Clone(), c.persistLists()
}

// DeleteList removes the list and orphans its tasks: every task that pointed
// at it keeps existing with no list reference. Absent ids are a no-op.
func (c *Container) DeleteList(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.listIndex(id)
	if i < 0 {
		return nil
	}
	delete(c.versions, id)
	c.lists = append(c.lists[:i], c.lists[i+1:]...)

	orphaned := false
	for j := range c.tasks {
		if c.tasks[j].ListID != nil && *c.tasks[j].ListID == id {
			c.tasks[j].ListID = nil
			c.tasks[j].UpdatedAt = models.Timestamp()
			c.versions[c.tasks[j].ID]++
			orphaned = true
		}
	}

	err := c.persistLists()
	if orphaned {
		if terr := c.persistTasks(); err == nil {
			err = terr
		}
	}
	return err
}

// Lists returns a copy of the list collection in insertion order. Copies
// are deep, like Tasks.
func (c *Container) Lists() []models.TaskList {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.TaskList, len(c.lists))
	for i := range c.lists {
		out[i] = c.lists[i].Clone()
	}
	return out
}

// ListByID looks a list up by id.
func (c *Container) ListByID(id string) (models.TaskList, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.listIndex(id)
	if i < 0 {
		return models.TaskList{}, ErrNotFound
	}
	return c.lists[i].Clone(), nil
}
