package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/localgem/localgem/internal/common"
	"github.com/localgem/localgem/internal/dbx"
	"github.com/localgem/localgem/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the review. A second review by the same user for the
// same place yields common.ErrAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {

	query :=
		`INSERT INTO reviews (rating, comment, user_id, place_id)
         VALUES ($1, $2, $3, $4)
         RETURNING id, created_at, updated_at
         `

	err := r.db.QueryRowContext(ctx, query,
		review.Rating, review.Comment, review.UserID, review.PlaceID).
		Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return review, nil
}

func (r *PostgresRepository) ListByPlace(ctx context.Context, placeID int64) ([]*models.Review, error) {

	query :=
		`SELECT id, rating, comment, user_id, place_id, created_at, updated_at
         FROM reviews
         WHERE place_id = $1
         ORDER BY created_at DESC
         `

	rows, err := r.db.QueryContext(ctx, query, placeID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Review
	for rows.Next() {
		rev := &models.Review{}
		if err := rows.Scan(&rev.ID, &rev.Rating, &rev.Comment, &rev.UserID, &rev.PlaceID,
			&rev.CreatedAt, &rev.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
