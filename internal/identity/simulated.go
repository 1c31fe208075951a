package identity

import (
	"context"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/octaltask/octaltask/internal/models"
)

// Simulated is a stand-in for a real authorization backend. It resolves an
// email to a collaborator by deriving a display name from the local part and
// minting an id, remembering the mapping so the same email resolves to the
// same user for the rest of the session. It performs no authorization
// checks; a production deployment swaps in Remote.
type Simulated struct {
	user *models.User

	mu    sync.Mutex
	known map[string]models.SharedUser // email -> resolved record
}

var _ Provider = (*Simulated)(nil)

// NewSimulated creates a simulated provider acting as user. A nil user means
// unauthenticated.
func NewSimulated(user *models.User) *Simulated {
	return &Simulated{user: user, known: map[string]models.SharedUser{}}
}

func (s *Simulated) CurrentUser() *models.User {
	return s.user
}

// NameFromEmail derives a display name from the email local part: segments
// split on '.' and '_', each title-cased. "jane.doe@x.com" -> "Jane Doe".
func NameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_'
	})
	if len(parts) == 0 {
		return email
	}
	for i, p := range parts {
		r, size := utf8.DecodeRuneInString(p)
		parts[i] = string(unicode.ToUpper(r)) + p[size:]
	}
	return strings.Join(parts, " ")
}

func (s *Simulated) ShareWithUser(_ context.Context, itemID, itemType, email string, role models.Role) (models.SharedUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if su, ok := s.known[email]; ok {
		su.Role = role
		return su, nil
	}
	su := models.SharedUser{
		ID:    uuid.NewString(),
		Name:  NameFromEmail(email),
		Email: email,
		Role:  role,
	}
	s.known[email] = su
	return su, nil
}

func (s *Simulated) UpdateUserPermission(context.Context, string, string, string, models.Role) error {
	return nil
}

func (s *Simulated) RemoveUserAccess(context.Context, string, string, string) error {
	return nil
}
