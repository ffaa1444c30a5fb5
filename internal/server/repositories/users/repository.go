package users

import (
	"context"

	"github.com/localgem/localgem/internal/server/models"
)

// Repository is the user-lookup capability consumed by the auth service.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
