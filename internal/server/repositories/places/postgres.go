package places

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

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

// slugsColumn encodes tag slugs for LIKE filtering: ",a,b," matches
// '%,a,%' for any member slug.
func slugsColumn(p *models.Place) string {
	slugs := p.TagSlugs()
	if len(slugs) == 0 {
		return ""
	}
	return "," + strings.Join(slugs, ",") + ","
}

func (r *PostgresRepository) Create(ctx context.Context, place *models.Place) (*models.Place, error) {

	query :=
		`INSERT INTO places (name, location, description, image_url, tags, tag_slugs, user_id)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, rating, created_at, updated_at
         `

	err := r.db.QueryRowContext(ctx, query,
		place.Name, place.Location, place.Description, place.ImageURL,
		place.Tags, slugsColumn(place), place.UserID).
		Scan(&place.ID, &place.Rating, &place.CreatedAt, &place.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return place, nil
}

func (r *PostgresRepository) FindAll(ctx context.Context, userID int64, tagSlugs []string) ([]*models.Place, error) {

	query :=
		`SELECT id, name, location, description, image_url, rating, tags, user_id, created_at, updated_at
         FROM places
         WHERE user_id = $1`

	args := []any{userID}
	for _, slug := range tagSlugs {
		args = append(args, "%,"+slug+",%")
		query += fmt.Sprintf(" AND tag_slugs LIKE $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Place
	for rows.Next() {
		p := &models.Place{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Location, &p.Description, &p.ImageURL,
			&p.Rating, &p.Tags, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) FindOne(ctx context.Context, id, userID int64) (*models.Place, error) {

	query :=
		`SELECT id, name, location, description, image_url, rating, tags, user_id, created_at, updated_at
         FROM places
         WHERE id = $1 AND user_id = $2
         `

	p := &models.Place{}
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&p.ID, &p.Name, &p.Location, &p.Description, &p.ImageURL,
			&p.Rating, &p.Tags, &p.UserID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, place *models.Place) (*models.Place, error) {

	query :=
		`UPDATE places
         SET name = $1, location = $2, description = $3, image_url = $4, tags = $5, tag_slugs = $6, updated_at = now()
         WHERE id = $7 AND user_id = $8
         RETURNING rating, created_at, updated_at
         `

	err := r.db.QueryRowContext(ctx, query,
		place.Name, place.Location, place.Description, place.ImageURL,
		place.Tags, slugsColumn(place), place.ID, place.UserID).
		Scan(&place.Rating, &place.CreatedAt, &place.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return place, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID int64) error {

	query := `DELETE FROM places WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}

// RecalculateRating refreshes the place's aggregate rating from its
// reviews. Call inside the same transaction that changed the reviews.
func (r *PostgresRepository) RecalculateRating(ctx context.Context, placeID int64) error {

	query :=
		`UPDATE places
         SET rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE place_id = $1), 0)
         WHERE id = $1
         `

	if _, err := r.db.ExecContext(ctx, query, placeID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
