package tags

import (
	"context"

	"github.com/localgem/localgem/internal/server/models"
)

// Repository keeps the catalog of distinct tags seen across places.
type Repository interface {
	Upsert(ctx context.Context, tag *models.Tag) error
	List(ctx context.Context) ([]*models.Tag, error)
}
