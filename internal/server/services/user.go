// Package services contains server-side business logic. This file implements
// UserService, which handles registration and login and issues the bearer
// tokens used by the authorization gate.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophfav/internal/common"
	"github.com/dmitrijs2005/gophfav/internal/logging"
	"github.com/dmitrijs2005/gophfav/internal/server/auth"
	"github.com/dmitrijs2005/gophfav/internal/server/config"
	"github.com/dmitrijs2005/gophfav/internal/server/models"
	"github.com/dmitrijs2005/gophfav/internal/server/repositories/users"
)

// PasswordHasher is satisfied by *cryptox.Hasher.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, digest string) bool
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	Message string
	Token   string
}

type UserService struct {
	users                       users.Repository
	hasher                      PasswordHasher
	log                         logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration

	// verified instead of a real digest when the user name is unknown
	dummyHash string
}

// NewUserService constructs a UserService using the users repository and server config.
func NewUserService(repo users.Repository, hasher PasswordHasher, cfg *config.Config, log logging.Logger) (*UserService, error) {
	seed, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, fmt.Errorf("preparing dummy hash: %w", err)
	}
	dummy, err := hasher.HashPassword(seed)
	if err != nil {
		return nil, fmt.Errorf("preparing dummy hash: %w", err)
	}
	return &UserService{
		users:                       repo,
		hasher:                      hasher,
		log:                         log,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		dummyHash:                   dummy,
	}, nil
}

// Register creates a user. password2, when not empty, must repeat password.
func (s *UserService) Register(ctx context.Context, userName, password, password2 string) (string, error) {
	if userName == "" {
		return "", fmt.Errorf("%w: user name is required", common.ErrValidation)
	}
	if password == "" {
		return "", fmt.Errorf("%w: password is required", common.ErrValidation)
	}
	if password2 != "" && password2 != password {
		return "", fmt.Errorf("%w: passwords do not match", common.ErrValidation)
	}

	_, err := s.users.GetUserByLogin(ctx, userName)
	switch {
	case err == nil:
		return "", common.ErrDuplicateUser
	case !errors.Is(err, common.ErrorNotFound):
		s.log.Error(ctx, "register: lookup failed", "user", userName, "error", err)
		return "", common.ErrorInternal
	}

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		s.log.Error(ctx, "register: hashing failed", "user", userName, "error", err)
		return "", common.ErrorInternal
	}

	// a concurrent registration can still win between the lookup and the
	// insert; the store's unique constraint decides
	if _, err := s.users.Create(ctx, &models.User{UserName: userName, PasswordHash: hash}); err != nil {
		if errors.Is(err, common.ErrDuplicateUser) {
			return "", common.ErrDuplicateUser
		}
		s.log.Error(ctx, "register: insert failed", "user", userName, "error", err)
		return "", common.ErrorInternal
	}

	s.log.Info(ctx, "user registered", "user", userName)
	return fmt.Sprintf("User %s successfully registered", userName), nil
}

// Login verifies the credentials and issues a token for the user. Unknown
// names and wrong passwords fail with the same error.
func (s *UserService) Login(ctx context.Context, userName, password string) (*LoginResult, error) {
	user, err := s.users.GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.VerifyPassword(password, s.dummyHash)
			return nil, common.ErrInvalidCredentials
		}
		s.log.Error(ctx, "login: lookup failed", "user", userName, "error", err)
		return nil, common.ErrorInternal
	}

	if !s.hasher.VerifyPassword(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(auth.Identity{UserID: user.ID, UserName: user.UserName}, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		s.log.Error(ctx, "login: signing token failed", "user", userName, "error", err)
		return nil, common.ErrorInternal
	}

	return &LoginResult{Message: "login successful", Token: token}, nil
}
