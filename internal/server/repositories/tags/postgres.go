package tags

import (
	"context"
	"fmt"

	"github.com/localgem/localgem/internal/dbx"
	"github.com/localgem/localgem/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert records the tag, keeping the first name seen for a slug.
func (r *PostgresRepository) Upsert(ctx context.Context, tag *models.Tag) error {

	query :=
		`INSERT INTO tags (name, slug)
         VALUES ($1, $2)
         ON CONFLICT (slug) DO NOTHING
         `

	if _, err := r.db.ExecContext(ctx, query, tag.Name, tag.Slug); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Tag, error) {

	query := `SELECT id, name, slug FROM tags ORDER BY slug`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Tag
	for rows.Next() {
		tag := &models.Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
