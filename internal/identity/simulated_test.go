package identity

import (
	"context"
	"testing"

	"github.com/matryer/is"
	"github.com/octaltask/octaltask/internal/models"
)

func TestNameFromEmail(t *testing.T) {
	cases := map[string]string{
		"jane.doe@example.com": "Jane Doe",
		"bob@example.com":      "Bob",
		"a_b@example.com":      "A B",
		"émile@example.com":    "Émile", // first rune may be multibyte
		"@example.com":         "@example.com",
	}
	for email, want := range cases {
		t.Run(email, func(t *testing.T) {
			is := is.New(t)
			is.Equal(NameFromEmail(email), want)
		})
	}
}

func TestSimulated_ShareWithUser(t *testing.T) {
	is := is.New(t)
	p := NewSimulated(&models.User{ID: "u1", Name: "Owner"})

	su, err := p.ShareWithUser(context.Background(), "t1", ItemTask, "jane.doe@example.com", models.RoleViewer)
	is.NoErr(err)
	is.True(su.ID != "")
	is.Equal(su.Name, "Jane Doe")
	is.Equal(su.Email, "jane.doe@example.com")
	is.Equal(su.Role, models.RoleViewer)

	// same email resolves to the same identity within the session
	again, err := p.ShareWithUser(context.Background(), "t2", ItemTask, "jane.doe@example.com", models.RoleEditor)
	is.NoErr(err)
	is.Equal(again.ID, su.ID)
	is.Equal(again.Role, models.RoleEditor)
}

func TestSimulated_CurrentUser(t *testing.T) {
	is := is.New(t)
	is.Equal(NewSimulated(nil).CurrentUser(), nil)

	u := models.User{ID: "u1", Name: "Owner"}
	is.Equal(*NewSimulated(&u).CurrentUser(), u)
}
