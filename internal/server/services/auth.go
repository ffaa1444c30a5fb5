// Package services contains server-side business logic. This file implements
// AuthService, which handles registration, credential validation, and
// issuing/refreshing JWTs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/localgem/localgem/internal/common"
	"github.com/localgem/localgem/internal/server/auth"
	"github.com/localgem/localgem/internal/server/config"
	"github.com/localgem/localgem/internal/server/models"
	"github.com/localgem/localgem/internal/server/repositories/repomanager"
)

// AuthService provides the authentication core:
//   - Register: hash the password and create the account
//   - Validate: turn (email, password) into an identity or a rejection
//   - Login: mint an access/refresh token pair for an identity
//   - Refresh: mint a fresh access token from a valid refresh token
//
// It holds no per-request state; the two signing secrets are read-only
// after construction, so concurrent use needs no coordination.
type AuthService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:            db,
		repomanager:   m,
		accessSecret:  []byte(cfg.JWTSecret),
		refreshSecret: []byte(cfg.JWTRefreshSecret),
		accessTTL:     cfg.AccessTokenTTL(),
		refreshTTL:    cfg.RefreshTokenTTL(),
	}
}

// Register creates an account with a bcrypt-hashed password and returns
// its identity. A taken email yields common.ErrAlreadyExists.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*models.AuthUser, error) {
	if email == "" || password == "" {
		return nil, common.ErrValidation
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrInternal
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{Email: email, Password: hash, Name: name})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, common.ErrInternal
	}

	return models.AuthUserFromUser(user), nil
}

// Validate checks the credentials against the stored account. An unknown
// email and a wrong password both return common.ErrInvalidCredentials so
// the caller cannot tell which factor failed.
func (s *AuthService) Validate(ctx context.Context, email, password string) (*models.AuthUser, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrInternal
	}

	if !auth.CheckPassword(password, user.Password) {
		return nil, common.ErrInvalidCredentials
	}

	return models.AuthUserFromUser(user), nil
}

// Login mints a token pair for an already-validated identity: the access
// token under the access secret/TTL, the refresh token under the refresh
// secret/TTL. Tokens are the only session state; nothing is stored
// server-side, so revocation before natural expiry is not supported.
func (s *AuthService) Login(user *models.AuthUser) (*models.TokenPair, error) {
	access, err := auth.GenerateToken(user.ID, user.Email, s.accessSecret, s.accessTTL)
	if err != nil {
		return nil, common.ErrInternal
	}

	refresh, err := auth.GenerateToken(user.ID, user.Email, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh verifies refreshToken under the refresh secret and mints a new
// access token for the decoded subject. The refresh token itself is not
// rotated. The account is not re-checked against the store: a deleted
// account keeps minting access tokens until its refresh token expires.
func (s *AuthService) Refresh(refreshToken string) (*models.AccessToken, error) {
	claims, err := auth.ParseToken(refreshToken, s.refreshSecret)
	if err != nil {
		return nil, err
	}

	access, err := auth.GenerateToken(claims.UserID, claims.Email, s.accessSecret, s.accessTTL)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &models.AccessToken{AccessToken: access}, nil
}
