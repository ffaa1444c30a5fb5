package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/localgem/localgem/internal/dbx"
	"github.com/localgem/localgem/internal/server/models"
	placesrepo "github.com/localgem/localgem/internal/server/repositories/places"
	reviewsrepo "github.com/localgem/localgem/internal/server/repositories/reviews"
	tagsrepo "github.com/localgem/localgem/internal/server/repositories/tags"
	usersrepo "github.com/localgem/localgem/internal/server/repositories/users"
)

// --- shared fakes ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	createOut   *models.User
	createErr   error
	lastCreated *models.User

	findOut *models.User
	findErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.lastCreated = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = 1
	return u, nil
}

func (f *fakeUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

type fakePlacesRepo struct {
	createErr error
	findAll   []*models.Place
	findAllErr error
	findOne   *models.Place
	findOneErr error
	updateErr error
	deleteErr error

	recalculated []int64
	recalcErr    error
}

func (f *fakePlacesRepo) Create(ctx context.Context, p *models.Place) (*models.Place, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	p.ID = 7
	return p, nil
}

func (f *fakePlacesRepo) FindAll(ctx context.Context, userID int64, slugs []string) ([]*models.Place, error) {
	return f.findAll, f.findAllErr
}

func (f *fakePlacesRepo) FindOne(ctx context.Context, id, userID int64) (*models.Place, error) {
	if f.findOneErr != nil {
		return nil, f.findOneErr
	}
	return f.findOne, nil
}

func (f *fakePlacesRepo) Update(ctx context.Context, p *models.Place) (*models.Place, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return p, nil
}

func (f *fakePlacesRepo) Delete(ctx context.Context, id, userID int64) error { return f.deleteErr }

func (f *fakePlacesRepo) RecalculateRating(ctx context.Context, placeID int64) error {
	if f.recalcErr != nil {
		return f.recalcErr
	}
	f.recalculated = append(f.recalculated, placeID)
	return nil
}

type fakeReviewsRepo struct {
	createErr error
	listOut   []*models.Review
	listErr   error
}

func (f *fakeReviewsRepo) Create(ctx context.Context, r *models.Review) (*models.Review, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	r.ID = 11
	return r, nil
}

func (f *fakeReviewsRepo) ListByPlace(ctx context.Context, placeID int64) ([]*models.Review, error) {
	return f.listOut, f.listErr
}

type fakeTagsRepo struct {
	upserted  []*models.Tag
	upsertErr error
	listOut   []*models.Tag
}

func (f *fakeTagsRepo) Upsert(ctx context.Context, tag *models.Tag) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, tag)
	return nil
}

func (f *fakeTagsRepo) List(ctx context.Context) ([]*models.Tag, error) { return f.listOut, nil }

type fakeRepoManager struct {
	u *fakeUsersRepo
	p *fakePlacesRepo
	r *fakeReviewsRepo
	t *fakeTagsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Places(db dbx.DBTX) placesrepo.Repository     { return m.p }
func (m *fakeRepoManager) Reviews(db dbx.DBTX) reviewsrepo.Repository   { return m.r }
func (m *fakeRepoManager) Tags(db dbx.DBTX) tagsrepo.Repository         { return m.t }
