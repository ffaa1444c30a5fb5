package httpapi

import (
	"context"
	"database/sql"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/localgem/localgem/internal/common"
	"github.com/localgem/localgem/internal/dbx"
	"github.com/localgem/localgem/internal/logging"
	"github.com/localgem/localgem/internal/server/config"
	"github.com/localgem/localgem/internal/server/models"
	placesrepo "github.com/localgem/localgem/internal/server/repositories/places"
	reviewsrepo "github.com/localgem/localgem/internal/server/repositories/reviews"
	tagsrepo "github.com/localgem/localgem/internal/server/repositories/tags"
	usersrepo "github.com/localgem/localgem/internal/server/repositories/users"
	"github.com/localgem/localgem/internal/server/services"
)

// ---- test logger ----

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// ---- fakes ----

type fakeUsersRepo struct {
	users map[string]*models.User
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if _, ok := f.users[u.Email]; ok {
		return nil, common.ErrAlreadyExists
	}
	u.ID = int64(len(f.users) + 1)
	f.users[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

type fakePlacesRepo struct {
	places map[int64]*models.Place
	nextID int64
}

func newFakePlacesRepo() *fakePlacesRepo {
	return &fakePlacesRepo{places: map[int64]*models.Place{}, nextID: 1}
}

func (f *fakePlacesRepo) Create(ctx context.Context, p *models.Place) (*models.Place, error) {
	p.ID = f.nextID
	f.nextID++
	f.places[p.ID] = p
	return p, nil
}

func (f *fakePlacesRepo) FindAll(ctx context.Context, userID int64, slugs []string) ([]*models.Place, error) {
	var out []*models.Place
	for _, p := range f.places {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlacesRepo) FindOne(ctx context.Context, id, userID int64) (*models.Place, error) {
	p, ok := f.places[id]
	if !ok || p.UserID != userID {
		return nil, common.ErrNotFound
	}
	return p, nil
}

func (f *fakePlacesRepo) Update(ctx context.Context, p *models.Place) (*models.Place, error) {
	if _, ok := f.places[p.ID]; !ok {
		return nil, common.ErrNotFound
	}
	f.places[p.ID] = p
	return p, nil
}

func (f *fakePlacesRepo) Delete(ctx context.Context, id, userID int64) error {
	p, ok := f.places[id]
	if !ok || p.UserID != userID {
		return common.ErrNotFound
	}
	delete(f.places, id)
	return nil
}

func (f *fakePlacesRepo) RecalculateRating(ctx context.Context, placeID int64) error { return nil }

type fakeReviewsRepo struct {
	reviews []*models.Review
}

func (f *fakeReviewsRepo) Create(ctx context.Context, r *models.Review) (*models.Review, error) {
	for _, existing := range f.reviews {
		if existing.UserID == r.UserID && existing.PlaceID == r.PlaceID {
			return nil, common.ErrAlreadyExists
		}
	}
	r.ID = int64(len(f.reviews) + 1)
	f.reviews = append(f.reviews, r)
	return r, nil
}

func (f *fakeReviewsRepo) ListByPlace(ctx context.Context, placeID int64) ([]*models.Review, error) {
	var out []*models.Review
	for _, r := range f.reviews {
		if r.PlaceID == placeID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeTagsRepo struct{}

func (f *fakeTagsRepo) Upsert(ctx context.Context, tag *models.Tag) error { return nil }
func (f *fakeTagsRepo) List(ctx context.Context) ([]*models.Tag, error)   { return nil, nil }

type fakeRepoManager struct {
	u *fakeUsersRepo
	p *fakePlacesRepo
	r *fakeReviewsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Places(db dbx.DBTX) placesrepo.Repository     { return m.p }
func (m *fakeRepoManager) Reviews(db dbx.DBTX) reviewsrepo.Repository   { return m.r }
func (m *fakeRepoManager) Tags(db dbx.DBTX) tagsrepo.Repository         { return &fakeTagsRepo{} }

type fakeFileStorage struct {
	savedName string
	url       string
}

func (f *fakeFileStorage) Save(ctx context.Context, filename, contentType string, data io.Reader) (string, error) {
	f.savedName = filename
	if f.url == "" {
		return "http://storage/test.png", nil
	}
	return f.url, nil
}

// ---- helpers ----

const (
	testAccessSecret  = "access-secret"
	testRefreshSecret = "refresh-secret"
)

func testServerConfig() *config.Config {
	return &config.Config{
		JWTSecret:              testAccessSecret,
		JWTRefreshSecret:       testRefreshSecret,
		AccessTokenTTLSeconds:  900,
		RefreshTokenTTLSeconds: 604800,
	}
}

// newTestServer wires a Server over in-memory fakes. Write paths open
// transactions on the sqlmock DB, so tests covering them register the
// matching Begin/Commit expectations on the returned mock.
func newTestServer(t *testing.T) (*Server, *fakeRepoManager, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	rm := &fakeRepoManager{
		u: newFakeUsersRepo(),
		p: newFakePlacesRepo(),
		r: &fakeReviewsRepo{},
	}

	cfg := testServerConfig()
	as := services.NewAuthService(db, rm, cfg)
	ps := services.NewPlaceService(db, rm)
	rs := services.NewReviewService(db, rm)

	return NewServer(":0", nopLogger{}, as, ps, rs, &fakeFileStorage{}, cfg.JWTSecret), rm, mock
}
