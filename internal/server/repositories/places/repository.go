package places

import (
	"context"

	"github.com/localgem/localgem/internal/server/models"
)

// Repository provides owner-scoped persistence for places. All lookups
// are keyed by (id, userID) so one user can never read or mutate
// another user's places.
type Repository interface {
	Create(ctx context.Context, place *models.Place) (*models.Place, error)
	FindAll(ctx context.Context, userID int64, tagSlugs []string) ([]*models.Place, error)
	FindOne(ctx context.Context, id, userID int64) (*models.Place, error)
	Update(ctx context.Context, place *models.Place) (*models.Place, error)
	Delete(ctx context.Context, id, userID int64) error
	RecalculateRating(ctx context.Context, placeID int64) error
}
