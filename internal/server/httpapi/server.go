// Package httpapi exposes the LocalGem API over HTTP/JSON: auth routes,
// places and reviews CRUD, all responses wrapped in a uniform envelope.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/localgem/localgem/internal/common"
	"github.com/localgem/localgem/internal/logging"
	"github.com/localgem/localgem/internal/server/services"
	"github.com/localgem/localgem/internal/server/storage"
)

type Server struct {
	address  string
	logger   logging.Logger
	auth     *services.AuthService
	places   *services.PlaceService
	reviews  *services.ReviewService
	files    storage.FileStorage
	password Strategy
	bearer   Strategy
}

func NewServer(address string, l logging.Logger, as *services.AuthService, ps *services.PlaceService,
	rs *services.ReviewService, fs storage.FileStorage, accessSecret string) *Server {
	return &Server{
		address:  address,
		logger:   l.With("module", "http_server"),
		auth:     as,
		places:   ps,
		reviews:  rs,
		files:    fs,
		password: NewPasswordStrategy(as),
		bearer:   NewBearerStrategy([]byte(accessSecret)),
	}
}

// Router builds the route table. Everything under /api except the auth
// routes and the health check sits behind the bearer guard.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/ping", s.handlePing).Methods(http.MethodGet)

	authRoutes := api.PathPrefix("/auth").Subrouter()
	authRoutes.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	authRoutes.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(s.requireAuth)
	protected.HandleFunc("/places", s.handleListPlaces).Methods(http.MethodGet)
	protected.HandleFunc("/places", s.handleCreatePlace).Methods(http.MethodPost)
	protected.HandleFunc("/places/{id:[0-9]+}", s.handleGetPlace).Methods(http.MethodGet)
	protected.HandleFunc("/places/{id:[0-9]+}", s.handleUpdatePlace).Methods(http.MethodPut)
	protected.HandleFunc("/places/{id:[0-9]+}", s.handleDeletePlace).Methods(http.MethodDelete)
	protected.HandleFunc("/places/{id:[0-9]+}/reviews", s.handleCreateReview).Methods(http.MethodPost)
	protected.HandleFunc("/places/{id:[0-9]+}/reviews", s.handleListReviews).Methods(http.MethodGet)
	protected.HandleFunc("/tags", s.handleListTags).Methods(http.MethodGet)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "OK", nil)
}

// writeServiceError maps service-layer failures onto the error
// envelope. All authentication failures collapse into one 401.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation failed")
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	default:
		s.logger.Error(r.Context(), err.Error())
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
