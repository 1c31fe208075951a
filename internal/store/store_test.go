package store

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
	"github.com/octaltask/octaltask/internal/models"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	sq, err := OpenSQLite(filepath.Join(dir, "snapshots.db"))
	if err != nil {
		t.Fatal(err)
	}
	fs, err := NewFile(filepath.Join(dir, "json"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		sq.Close()
		fs.Close()
	})
	return map[string]Store{"sqlite": sq, "file": fs}
}

func TestStore_LoadAbsent(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			data, ok, err := s.Load(KeyTasks)
			is.NoErr(err)
			is.True(!ok)
			is.Equal(data, nil)
		})
	}
}

func TestStore_SaveLoad(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			is.NoErr(s.Save(KeyLists, []byte(`[]`)))
			is.NoErr(s.Save(KeyLists, []byte(`[{"id":"1"}]`))) // overwrite

			data, ok, err := s.Load(KeyLists)
			is.NoErr(err)
			is.True(ok)
			is.Equal(string(data), `[{"id":"1"}]`)
		})
	}
}

// Snapshots must survive a save/load cycle byte-for-byte so the rebuilt
// collection is deep-equal to the original, order included.
func TestStore_TaskRoundTrip(t *testing.T) {
	due := "2026-03-01"
	listID := "1700000000000-abc123"
	tasks := []models.Task{
		{
			ID:        "1700000000001-x1y2z3",
			Title:     "Write report",
			DueDate:   &due,
			ListID:    &listID,
			Subtasks:  []models.SubTask{{ID: "s1", Title: "Outline", Completed: true}},
			Comments:  []models.Comment{{ID: "c1", TaskID: "1700000000001-x1y2z3", UserID: "u1", UserName: "Ada", Content: "done?", CreatedAt: "2026-02-01T10:00:00Z"}},
			CreatedAt: "2026-02-01T09:00:00Z",
			UpdatedAt: "2026-02-01T10:00:00Z",
		},
		{
			ID:         "1700000000002-q9w8e7",
			Title:      "Buy milk",
			Completed:  true,
			Starred:    true,
			SharedWith: []models.SharedUser{{ID: "su1", Name: "Bob", Email: "bob@example.com", Role: models.RoleEditor}},
			Subtasks:   []models.SubTask{},
			Comments:   []models.Comment{},
			CreatedAt:  "2026-02-02T09:00:00Z",
			UpdatedAt:  "2026-02-02T09:00:00Z",
		},
	}

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			bs, err := json.Marshal(tasks)
			is.NoErr(err)
			is.NoErr(s.Save(KeyTasks, bs))

			data, ok, err := s.Load(KeyTasks)
			is.NoErr(err)
			is.True(ok)

			var got []models.Task
			is.NoErr(json.Unmarshal(data, &got))
			is.Equal(got, tasks)
		})
	}
}
