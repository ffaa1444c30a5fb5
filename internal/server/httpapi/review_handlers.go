package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/localgem/localgem/internal/server/models"
)

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	user := AuthUserFromContext(r.Context())

	var body reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review := &models.Review{
		Rating:  body.Rating,
		Comment: body.Comment,
		UserID:  user.ID,
		PlaceID: pathID(r),
	}

	created, err := s.reviews.Create(r.Context(), review)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Review created successfully", created)
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.reviews.ListByPlace(r.Context(), pathID(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Reviews retrieved successfully", reviews)
}
