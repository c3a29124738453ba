// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and the per-request lookup
// that backs session resolution.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shinxity/daylist/internal/common"
	"github.com/shinxity/daylist/internal/dbx"
	"github.com/shinxity/daylist/internal/server/auth"
	"github.com/shinxity/daylist/internal/server/config"
	"github.com/shinxity/daylist/internal/server/models"
	"github.com/shinxity/daylist/internal/server/repositories/repomanager"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

// UserService provides identity-related operations:
// - Register: validate input, hash the password, create the user
// - Login: verify credentials (uniform failure, no existence leak)
// - GetByID: resolve a session principal back to a live user
// - Delete: remove a user and all of their tasks atomically
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	bcryptCost  int
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		bcryptCost:  cfg.BcryptCost,
	}
}

// Register creates a new user. The password is stored only as a bcrypt hash.
// Returns ErrorValidation for malformed input and ErrorDuplicateUsername when
// the login name is already taken.
func (s *UserService) Register(ctx context.Context, fullName, username, password string) (*models.User, error) {
	if strings.TrimSpace(fullName) == "" || strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil, common.ErrorValidation
	}
	if len(username) < minUsernameLength || len(password) < minPasswordLength {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetUserByLogin(ctx, username)
	if err == nil {
		return nil, common.ErrorDuplicateUsername
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking username: %w", err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		FullName:     fullName,
		UserName:     username,
		PasswordHash: hash,
	}
	u, err := repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the provided credentials. Any failure — unknown username or
// wrong password — yields the same ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidCredentials
		}
		return nil, common.ErrorInternal
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrorInvalidCredentials
	}
	return user, nil
}

// GetByID returns the user a session token refers to, or ErrorNotFound if the
// account no longer exists.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// Delete removes the user and every task they own in one transaction. The
// cascade is enforced here, not assumed from the schema.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Tasks(tx).DeleteByUser(ctx, id); err != nil {
			return fmt.Errorf("error deleting user tasks: %w", err)
		}
		if err := s.repomanager.Users(tx).Delete(ctx, id); err != nil {
			return fmt.Errorf("error deleting user: %w", err)
		}
		return nil
	})
}
