package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/localgem/localgem/internal/common"
	"github.com/localgem/localgem/internal/server/models"
	"github.com/localgem/localgem/internal/server/services"
)

const (
	maxImageSize       = 5 << 20 // 5MB
	maxMultipartMemory = 8 << 20
)

type placeRequest struct {
	Name        *string `json:"name"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Tags        *string `json:"tags"`
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *Server) handleListPlaces(w http.ResponseWriter, r *http.Request) {
	user := AuthUserFromContext(r.Context())

	places, err := s.places.List(r.Context(), user.ID, r.URL.Query().Get("tags"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Places retrieved successfully", places)
}

func (s *Server) handleGetPlace(w http.ResponseWriter, r *http.Request) {
	user := AuthUserFromContext(r.Context())

	place, err := s.places.Get(r.Context(), pathID(r), user.ID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Place retrieved successfully", place)
}

func (s *Server) handleCreatePlace(w http.ResponseWriter, r *http.Request) {
	user := AuthUserFromContext(r.Context())

	params, imageURL, err := s.parsePlaceRequest(w, r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	place := &models.Place{
		Name:        deref(params.Name),
		Location:    deref(params.Location),
		Description: deref(params.Description),
		Tags:        deref(params.Tags),
		ImageURL:    imageURL,
		UserID:      user.ID,
	}

	created, err := s.places.Create(r.Context(), place)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Place created successfully", created)
}

func (s *Server) handleUpdatePlace(w http.ResponseWriter, r *http.Request) {
	user := AuthUserFromContext(r.Context())

	params, imageURL, err := s.parsePlaceRequest(w, r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	update := &services.UpdatePlaceParams{
		Name:        params.Name,
		Location:    params.Location,
		Description: params.Description,
		Tags:        params.Tags,
	}
	if imageURL != "" {
		update.ImageURL = &imageURL
	}

	place, err := s.places.Update(r.Context(), pathID(r), user.ID, update)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Place updated successfully", place)
}

func (s *Server) handleDeletePlace(w http.ResponseWriter, r *http.Request) {
	user := AuthUserFromContext(r.Context())

	if err := s.places.Delete(r.Context(), pathID(r), user.ID); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Place deleted successfully", nil)
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.places.Tags(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Tags retrieved successfully", tags)
}

// parsePlaceRequest reads the place fields from either a JSON body or a
// multipart form with an optional image. The returned imageURL is empty
// when no image was uploaded.
func (s *Server) parsePlaceRequest(w http.ResponseWriter, r *http.Request) (*placeRequest, string, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		params := &placeRequest{}
		if err := json.NewDecoder(r.Body).Decode(params); err != nil {
			return nil, "", common.ErrValidation
		}
		return params, "", nil
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, "", common.ErrValidation
	}

	params := &placeRequest{
		Name:        formField(r, "name"),
		Location:    formField(r, "location"),
		Description: formField(r, "description"),
		Tags:        formField(r, "tags"),
	}

	imageURL, err := s.saveImage(r)
	if err != nil {
		return nil, "", err
	}

	return params, imageURL, nil
}

// formField reports a multipart field only when it was actually sent,
// so updates can distinguish "unset" from "set to empty".
func formField(r *http.Request, name string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	if vals, ok := r.MultipartForm.Value[name]; ok && len(vals) > 0 {
		v := vals[0]
		return &v
	}
	return nil
}

// saveImage validates and stores the optional "image" part: at most
// 5MB and an image/* content type.
func (s *Server) saveImage(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", common.ErrValidation
	}
	defer file.Close()

	if header.Size > maxImageSize {
		return "", common.ErrValidation
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", common.ErrValidation
	}

	url, err := s.files.Save(r.Context(), header.Filename, contentType, file)
	if err != nil {
		return "", err
	}

	return url, nil
}
