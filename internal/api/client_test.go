package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matryer/is"
	"github.com/octaltask/octaltask/internal/models"
)

func TestNormalizeDue(t *testing.T) {
	is := is.New(t)

	got, err := NormalizeDue("2026-03-01")
	is.NoErr(err)
	is.Equal(got, "2026-03-01T23:59:59+07:00")

	// full instants pass through untouched
	got, err = NormalizeDue("2026-03-01T08:00:00Z")
	is.NoErr(err)
	is.Equal(got, "2026-03-01T08:00:00Z")

	_, err = NormalizeDue("march first")
	is.True(err != nil)
}

func TestClient_BearerAndMethods(t *testing.T) {
	is := is.New(t)

	var gotAuth, gotMethod, gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotBody = nil
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&gotBody)
		}
		json.NewEncoder(w).Encode(models.Task{ID: "42", Title: "from server"})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok-123", 0, nil)
	due := "2026-03-01"
	task, err := c.CreateTask(context.Background(), models.Task{Title: "Buy milk", DueDate: &due})
	is.NoErr(err)
	is.Equal(task.ID, "42")
	is.Equal(gotAuth, "Bearer tok-123")
	is.Equal(gotMethod, http.MethodPost)
	is.Equal(gotPath, "/tasks")
	is.Equal(gotBody["dueDate"], "2026-03-01T23:59:59+07:00")

	_, err = c.UpdateTask(context.Background(), models.Task{ID: "42", Title: "renamed"})
	is.NoErr(err)
	is.Equal(gotMethod, http.MethodPatch)
	is.Equal(gotPath, "/tasks/42")

	is.NoErr(c.DeleteTask(context.Background(), "42"))
	is.Equal(gotMethod, http.MethodDelete)
}

func TestClient_APIError(t *testing.T) {
	is := is.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": "not allowed"})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", 0, nil)
	_, err := c.Whoami(context.Background())
	apiErr, ok := err.(*APIError)
	is.True(ok)
	is.Equal(apiErr.Status, http.StatusForbidden)
	is.Equal(apiErr.Message, "not allowed")
}

func TestClient_Share(t *testing.T) {
	is := is.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.URL.Path, "/lists/7/share")
		var in map[string]string
		json.NewDecoder(r.Body).Decode(&in)
		json.NewEncoder(w).Encode(models.SharedUser{ID: "u9", Email: in["email"], Role: models.Role(in["role"])})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", 0, nil)
	su, err := c.Share(context.Background(), "7", "list", "a@example.com", models.RoleViewer)
	is.NoErr(err)
	is.Equal(su.Email, "a@example.com")
	is.Equal(su.Role, models.RoleViewer)
}
