package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/localgem/localgem/internal/common"
	"github.com/localgem/localgem/internal/dbx"
	"github.com/localgem/localgem/internal/server/models"
	"github.com/localgem/localgem/internal/server/repositories/repomanager"
)

// PlaceService implements owner-scoped CRUD for places. Creating or
// updating a place also records its tags in the shared tag catalog,
// inside one transaction with the place write.
type PlaceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPlaceService(db *sql.DB, m repomanager.RepositoryManager) *PlaceService {
	return &PlaceService{db: db, repomanager: m}
}

// UpdatePlaceParams carries a partial update; nil fields keep the stored
// value.
type UpdatePlaceParams struct {
	Name        *string
	Location    *string
	Description *string
	ImageURL    *string
	Tags        *string
}

// List returns the user's places, newest first. tagsParam is the raw
// comma-separated filter; places must carry every requested tag.
func (s *PlaceService) List(ctx context.Context, userID int64, tagsParam string) ([]*models.Place, error) {
	repo := s.repomanager.Places(s.db)
	return repo.FindAll(ctx, userID, models.SlugifyList(tagsParam))
}

func (s *PlaceService) Get(ctx context.Context, id, userID int64) (*models.Place, error) {
	repo := s.repomanager.Places(s.db)
	return repo.FindOne(ctx, id, userID)
}

func (s *PlaceService) Create(ctx context.Context, place *models.Place) (*models.Place, error) {
	if place.Name == "" || place.Location == "" {
		return nil, common.ErrValidation
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Places(tx).Create(ctx, place); err != nil {
			return err
		}
		return s.recordTags(ctx, tx, place.Tags)
	})
	if err != nil {
		return nil, err
	}

	return place, nil
}

func (s *PlaceService) Update(ctx context.Context, id, userID int64, params *UpdatePlaceParams) (*models.Place, error) {
	place, err := s.repomanager.Places(s.db).FindOne(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		place.Name = *params.Name
	}
	if params.Location != nil {
		place.Location = *params.Location
	}
	if params.Description != nil {
		place.Description = *params.Description
	}
	if params.ImageURL != nil {
		place.ImageURL = *params.ImageURL
	}
	if params.Tags != nil {
		place.Tags = *params.Tags
	}
	if place.Name == "" || place.Location == "" {
		return nil, common.ErrValidation
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Places(tx).Update(ctx, place); err != nil {
			return err
		}
		return s.recordTags(ctx, tx, place.Tags)
	})
	if err != nil {
		return nil, err
	}

	return place, nil
}

func (s *PlaceService) Delete(ctx context.Context, id, userID int64) error {
	return s.repomanager.Places(s.db).Delete(ctx, id, userID)
}

// Tags returns the catalog of distinct tags seen across all places.
func (s *PlaceService) Tags(ctx context.Context) ([]*models.Tag, error) {
	return s.repomanager.Tags(s.db).List(ctx)
}

func (s *PlaceService) recordTags(ctx context.Context, tx dbx.DBTX, tagsField string) error {
	if tagsField == "" {
		return nil
	}
	repo := s.repomanager.Tags(tx)
	for _, name := range strings.Split(tagsField, ",") {
		name = strings.TrimSpace(name)
		slug := models.Slugify(name)
		if slug == "" {
			continue
		}
		if err := repo.Upsert(ctx, &models.Tag{Name: name, Slug: slug}); err != nil {
			return err
		}
	}
	return nil
}
