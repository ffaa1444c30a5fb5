package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/localgem/localgem/internal/common"
	"github.com/localgem/localgem/internal/server/auth"
	"github.com/localgem/localgem/internal/server/models"
	"github.com/localgem/localgem/internal/server/services"
)

type ctxKey string

const authUserKey ctxKey = "authUser"

// AuthUserFromContext returns the identity attached by a strategy, or
// nil when the request was not authenticated.
func AuthUserFromContext(ctx context.Context) *models.AuthUser {
	user, _ := ctx.Value(authUserKey).(*models.AuthUser)
	return user
}

// Strategy authenticates an incoming request and yields the identity.
// Both implementations are stateless and fail closed: absent or bad
// credentials reject, never default-allow.
type Strategy interface {
	Authenticate(r *http.Request) (*models.AuthUser, error)
}

// PasswordStrategy validates email/password from the JSON request body.
// Used only on the login route.
type PasswordStrategy struct {
	auth *services.AuthService
}

func NewPasswordStrategy(auth *services.AuthService) *PasswordStrategy {
	return &PasswordStrategy{auth: auth}
}

func (s *PasswordStrategy) Authenticate(r *http.Request) (*models.AuthUser, error) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, common.ErrInvalidCredentials
	}
	if body.Email == "" || body.Password == "" {
		return nil, common.ErrInvalidCredentials
	}

	return s.auth.Validate(r.Context(), body.Email, body.Password)
}

// BearerStrategy verifies the bearer token from the Authorization
// header under the access secret. Used on every protected route.
type BearerStrategy struct {
	accessSecret []byte
}

func NewBearerStrategy(accessSecret []byte) *BearerStrategy {
	return &BearerStrategy{accessSecret: accessSecret}
}

func (s *BearerStrategy) Authenticate(r *http.Request) (*models.AuthUser, error) {
	const prefix = "Bearer "

	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, prefix) {
		return nil, common.ErrUnauthorized
	}

	claims, err := auth.ParseToken(strings.TrimSpace(header[len(prefix):]), s.accessSecret)
	if err != nil {
		return nil, err
	}

	return &models.AuthUser{ID: claims.UserID, Email: claims.Email}, nil
}
