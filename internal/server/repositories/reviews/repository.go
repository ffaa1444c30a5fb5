package reviews

import (
	"context"

	"github.com/localgem/localgem/internal/server/models"
)

// Repository persists place reviews. A user may review a place once.
type Repository interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	ListByPlace(ctx context.Context, placeID int64) ([]*models.Review, error)
}
