package services

import (
	"context"
	"database/sql"

	"github.com/localgem/localgem/internal/common"
	"github.com/localgem/localgem/internal/dbx"
	"github.com/localgem/localgem/internal/server/models"
	"github.com/localgem/localgem/internal/server/repositories/repomanager"
)

// ReviewService manages place reviews. Creating a review and refreshing
// the place's aggregate rating happen in one transaction.
type ReviewService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewReviewService(db *sql.DB, m repomanager.RepositoryManager) *ReviewService {
	return &ReviewService{db: db, repomanager: m}
}

// Create stores the review and recomputes the place rating. A repeat
// review by the same user for the same place yields
// common.ErrAlreadyExists.
func (s *ReviewService) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return nil, common.ErrValidation
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Reviews(tx).Create(ctx, review); err != nil {
			return err
		}
		return s.repomanager.Places(tx).RecalculateRating(ctx, review.PlaceID)
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

func (s *ReviewService) ListByPlace(ctx context.Context, placeID int64) ([]*models.Review, error) {
	return s.repomanager.Reviews(s.db).ListByPlace(ctx, placeID)
}
