package state

import (
	"errors"
	"log"
	"sync"
	"testing"

	"github.com/matryer/is"
	"github.com/octaltask/octaltask/internal/identity"
	"github.com/octaltask/octaltask/internal/models"
)

// memStore is an in-memory store.Store with switchable failures.
type memStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	failLoad bool
	failSave bool
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Load(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failLoad {
		return nil, false, errors.New("load failed")
	}
	bs, ok := m.data[key]
	return bs, ok, nil
}

func (m *memStore) Save(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return errors.New("save failed")
	}
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *memStore) Close() error { return nil }

func testUser() *models.User {
	return &models.User{ID: "u1", Name: "Owner", Email: "owner@example.com"}
}

func newTestContainer(t *testing.T) (*Container, *memStore) {
	t.Helper()
	st := newMemStore()
	c := New(st, identity.NewSimulated(testUser()), log.New(testWriter{t}, "", 0))
	c.Load()
	return c, st
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func TestContainer_SeedsOnFirstRun(t *testing.T) {
	is := is.New(t)
	c, st := newTestContainer(t)

	is.True(!c.Loading())
	is.NoErr(c.LoadErr())
	is.Equal(len(c.Lists()), 1)
	is.Equal(c.Lists()[0].Name, "Personal")
	is.Equal(c.Lists()[0].OwnerID, "u1")
	is.Equal(len(c.Tasks()), 1)

	// seeds were persisted immediately
	_, ok, err := st.Load("octaltask_tasks")
	is.NoErr(err)
	is.True(ok)
	_, ok, err = st.Load("octaltask_lists")
	is.NoErr(err)
	is.True(ok)
}

func TestContainer_LoadFailure(t *testing.T) {
	is := is.New(t)
	st := newMemStore()
	st.failLoad = true
	c := New(st, identity.NewSimulated(testUser()), log.New(testWriter{t}, "", 0))
	c.Load()

	// usable with empty collections, error flagged
	is.True(c.LoadErr() != nil)
	is.Equal(len(c.Tasks()), 0)
	is.Equal(len(c.Lists()), 0)

	// the flag clears once a later persist succeeds
	st.failLoad = false
	_, err := c.AddTask(models.Task{Title: "recover"})
	is.NoErr(err)
	is.NoErr(c.LoadErr())
}

func TestContainer_AddTask(t *testing.T) {
	is := is.New(t)
	c, _ := newTestContainer(t)

	task, err := c.AddTask(models.Task{Title: "Buy milk"})
	is.NoErr(err)
	is.True(task.ID != "")
	is.Equal(task.Title, "Buy milk")
	is.Equal(task.Completed, false)
	is.Equal(task.Subtasks, []models.SubTask{})
	is.Equal(task.Comments, []models.Comment{})
	is.True(task.CreatedAt != "")
	is.Equal(task.CreatedAt, task.UpdatedAt)

	// ids stay unique across the collection
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		tk, err := c.AddTask(models.Task{Title: "t"})
		is.NoErr(err)
		is.True(!seen[tk.ID])
		seen[tk.ID] = true
	}

	// permissive contract: a malformed partial is accepted as-is
	empty, err := c.AddTask(models.Task{})
	is.NoErr(err)
	is.Equal(empty.Title, "")
}

func TestContainer_UpdateTask(t *testing.T) {
	is := is.New(t)
	c, _ := newTestContainer(t)

	task, err := c.AddTask(models.Task{Title: "Buy milk"})
	is.NoErr(err)

	done := true
	updated, err := c.UpdateTask(task.ID, TaskPatch{Completed: &done})
	is.NoErr(err)
	is.Equal(updated.Completed, true)
	is.Equal(updated.Title, "Buy milk") // untouched fields survive the merge
	is.True(updated.UpdatedAt > task.UpdatedAt)

	got, err := c.TaskByID(task.ID)
	is.NoErr(err)
	is.Equal(got.Completed, true)

	_, err = c.UpdateTask("missing", TaskPatch{Completed: &done})
	is.Equal(err, ErrNotFound)

	t.Run("due date set and clear", func(t *testing.T) {
		is := is.New(t)
		due := "2026-03-01"
		updated, err := c.UpdateTask(task.ID, TaskPatch{DueDate: &due})
		is.NoErr(err)
		is.Equal(*updated.DueDate, "2026-03-01")

		updated, err = c.UpdateTask(task.ID, TaskPatch{ClearDue: true})
		is.NoErr(err)
		is.Equal(updated.DueDate, nil)
	})

	t.Run("subtasks replaced wholesale", func(t *testing.T) {
		is := is.New(t)
		subs := []models.SubTask{{ID: "s1", Title: "open the fridge"}}
		updated, err := c.UpdateTask(task.ID, TaskPatch{Subtasks: &subs})
		is.NoErr(err)
		is.Equal(len(updated.Subtasks), 1)
	})
}

func TestContainer_DeleteTask(t *testing.T) {
	is := is.New(t)
	c, _ := newTestContainer(t)

	list, err := c.AddList(models.TaskList{Name: "Chores"})
	is.NoErr(err)
	task, err := c.AddTask(models.Task{Title: "Buy milk", ListID: &list.ID})
	is.NoErr(err)
	is.Equal(len(c.TasksByList(list.ID)), 1)

	is.NoErr(c.DeleteTask(task.ID))
	for _, got := range c.TasksByList(list.ID) {
		is.True(got.ID != task.ID)
	}
	_, err = c.TaskByID(task.ID)
	is.Equal(err, ErrNotFound)

	// deleting an absent id is a no-op
	is.NoErr(c.DeleteTask(task.ID))
}

func TestContainer_TasksByList(t *testing.T) {
	is := is.New(t)
	c, _ := newTestContainer(t)

	list, err := c.AddList(models.TaskList{Name: "Chores"})
	is.NoErr(err)
	other, err := c.AddList(models.TaskList{Name: "Work"})
	is.NoErr(err)

	_, err = c.AddTask(models.Task{Title: "a", ListID: &list.ID})
	is.NoErr(err)
	_, err = c.AddTask(models.Task{Title: "b", ListID: &list.ID})
	is.NoErr(err)
	_, err = c.AddTask(models.Task{Title: "c", ListID: &other.ID})
	is.NoErr(err)
	_, err = c.AddTask(models.Task{Title: "orphan"})
	is.NoErr(err)

	is.Equal(len(c.TasksByList(list.ID)), 2)
	is.Equal(len(c.TasksByList(other.ID)), 1)
	is.Equal(len(c.TasksByList("missing")), 0)
}

func TestContainer_DeleteListOrphansTasks(t *testing.T) {
	is := is.New(t)
	c, _ := newTestContainer(t)

	list, err := c.AddList(models.TaskList{Name: "Chores", Color: models.ColorGreen})
	is.NoErr(err)
	a, err := c.AddTask(models.Task{Title: "a", ListID: &list.ID})
	is.NoErr(err)
	b, err := c.AddTask(models.Task{Title: "b", ListID: &list.ID})
	is.NoErr(err)

	is.NoErr(c.DeleteList(list.ID))
	_, err = c.ListByID(list.ID)
	is.Equal(err, ErrNotFound)

	// tasks survive with their list reference cleared
	for _, id := range []string{a.ID, b.ID} {
		got, err := c.TaskByID(id)
		is.NoErr(err)
		is.Equal(got.ListID, nil)
	}

	// deleting an absent list is a no-op
	is.NoErr(c.DeleteList(list.ID))
}

func TestContainer_UpdateList(t *testing.T) {
	is := is.New(t)
	c, _ := newTestContainer(t)

	list, err := c.AddList(models.TaskList{Name: "Chores"})
	is.NoErr(err)

	name := "Errands"
	color := models.ColorAmber
	updated, err := c.UpdateList(list.ID, ListPatch{Name: &name, Color: &color})
	is.NoErr(err)
	is.Equal(updated.Name, "Errands")
	is.Equal(updated.Color, models.ColorAmber)
	is.True(updated.UpdatedAt > list.UpdatedAt)

	_, err = c.UpdateList("missing", ListPatch{Name: &name})
	is.Equal(err, ErrNotFound)
}

// A fresh container reading the same store must reconstruct the collections
// deep-equal to what the first one held, order included.
func TestContainer_ReloadRoundTrip(t *testing.T) {
	is := is.New(t)
	c, st := newTestContainer(t)

	list, err := c.AddList(models.TaskList{Name: "Chores", Color: models.ColorRed, Icon: models.IconHome})
	is.NoErr(err)
	due := "2026-03-01"
	_, err = c.AddTask(models.Task{Title: "Buy milk", DueDate: &due, ListID: &list.ID, Starred: true})
	is.NoErr(err)
	subs := []models.SubTask{{ID: "s1", Title: "outline", Completed: true}}
	task2, err := c.AddTask(models.Task{Title: "Write report", Notes: "due friday"})
	is.NoErr(err)
	_, err = c.UpdateTask(task2.ID, TaskPatch{Subtasks: &subs})
	is.NoErr(err)

	c2 := New(st, identity.NewSimulated(testUser()), log.New(testWriter{t}, "", 0))
	c2.Load()
	is.NoErr(c2.LoadErr())
	is.Equal(c2.Tasks(), c.Tasks())
	is.Equal(c2.Lists(), c.Lists())
}
