package identity

import (
	"context"
	"log"

	"github.com/golang-jwt/jwt/v5"
	"github.com/octaltask/octaltask/internal/api"
	"github.com/octaltask/octaltask/internal/models"
)

// Remote backs the sharing primitives with the real API. The current user
// is resolved once at construction.
type Remote struct {
	client *api.Client
	user   *models.User
}

var _ Provider = (*Remote)(nil)

// tokenClaims is the subset of the bearer token this client understands.
type tokenClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// NewRemote resolves the current user from the whoami endpoint. When that
// call fails (offline startup, backend down) it falls back to the claims
// embedded in the bearer token so actions can still be attributed; the
// token is not verified here, the backend rejects forged ones on write.
func NewRemote(ctx context.Context, client *api.Client, token string, logger *log.Logger) *Remote {
	if logger == nil {
		logger = log.Default()
	}
	r := &Remote{client: client}

	u, err := client.Whoami(ctx)
	if err == nil {
		r.user = &u
		return r
	}
	logger.Printf("identity: whoami failed, falling back to token claims: %v", err)

	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		logger.Printf("identity: cannot parse token: %v", err)
		return r
	}
	if claims.Subject == "" {
		return r
	}
	r.user = &models.User{ID: claims.Subject, Name: claims.Name, Email: claims.Email}
	return r
}

func (r *Remote) CurrentUser() *models.User {
	return r.user
}

func (r *Remote) ShareWithUser(ctx context.Context, itemID, itemType, email string, role models.Role) (models.SharedUser, error) {
	return r.client.Share(ctx, itemID, itemType, email, role)
}

func (r *Remote) UpdateUserPermission(ctx context.Context, itemID, itemType, userID string, role models.Role) error {
	return r.client.UpdatePermission(ctx, itemID, itemType, userID, role)
}

func (r *Remote) RemoveUserAccess(ctx context.Context, itemID, itemType, userID string) error {
	return r.client.RemoveAccess(ctx, itemID, itemType, userID)
}
