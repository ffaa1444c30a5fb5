package services

import (
	"context"
	"errors"
	"testing"

	"github.com/localgem/localgem/internal/common"
	"github.com/localgem/localgem/internal/server/models"
)

func TestReviewCreate_RecalculatesRatingInTx(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	placesRepo := &fakePlacesRepo{}
	s := NewReviewService(db, &fakeRepoManager{p: placesRepo, r: &fakeReviewsRepo{}})

	rev, err := s.Create(context.Background(), &models.Review{Rating: 5, UserID: 1, PlaceID: 2})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rev.ID != 11 {
		t.Fatalf("unexpected review: %+v", rev)
	}
	if len(placesRepo.recalculated) != 1 || placesRepo.recalculated[0] != 2 {
		t.Fatalf("expected rating recalculation for place 2, got %v", placesRepo.recalculated)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("tx expectations: %v", err)
	}
}

func TestReviewCreate_RatingOutOfRange(t *testing.T) {
	db, _ := newSQLMockDB(t)
	s := NewReviewService(db, &fakeRepoManager{p: &fakePlacesRepo{}, r: &fakeReviewsRepo{}})

	for _, rating := range []int{0, 6, -1} {
		_, err := s.Create(context.Background(), &models.Review{Rating: rating, UserID: 1, PlaceID: 2})
		if !errors.Is(err, common.ErrValidation) {
			t.Fatalf("rating %d: expected common.ErrValidation, got %v", rating, err)
		}
	}
}

func TestReviewCreate_DuplicateRollsBack(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	placesRepo := &fakePlacesRepo{}
	s := NewReviewService(db, &fakeRepoManager{
		p: placesRepo,
		r: &fakeReviewsRepo{createErr: common.ErrAlreadyExists},
	})

	_, err := s.Create(context.Background(), &models.Review{Rating: 4, UserID: 1, PlaceID: 2})
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("expected common.ErrAlreadyExists, got %v", err)
	}
	if len(placesRepo.recalculated) != 0 {
		t.Fatalf("rating must not be recalculated on failed insert")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("tx expectations: %v", err)
	}
}

func TestReviewListByPlace(t *testing.T) {
	db, _ := newSQLMockDB(t)
	s := NewReviewService(db, &fakeRepoManager{
		p: &fakePlacesRepo{},
		r: &fakeReviewsRepo{listOut: []*models.Review{{ID: 1, Rating: 5}}},
	})

	got, err := s.ListByPlace(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListByPlace error: %v", err)
	}
	if len(got) != 1 || got[0].Rating != 5 {
		t.Fatalf("unexpected reviews: %+v", got)
	}
}
