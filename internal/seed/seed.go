// Package seed creates the data the service needs before its first request.
package seed

import (
	"context"
	"errors"
	"fmt"

	appModels "github.com/campusdesk/academics/internal/app/models"
	appRepos "github.com/campusdesk/academics/internal/app/repositories"
	"github.com/campusdesk/academics/internal/pkg/apperrors"
	"github.com/campusdesk/academics/internal/pkg/auth"
	"github.com/rs/zerolog"
)

const adminUserCode = "A-0001"

// AdminStore is what seeding the admin account needs.
type AdminStore interface {
	GetUserByEmail(ctx context.Context, email string) (*appModels.User, error)
	WithTx(ctx context.Context, fn func(ctx context.Context, tx appRepos.UserTxRepository) error) error
}

// CreateDefaultAdmin creates the admin account from configuration if no account with
// that email exists. An empty password disables seeding.
func CreateDefaultAdmin(ctx context.Context, users AdminStore, hasher *auth.PasswordHasher, email, password string, lgr zerolog.Logger) error {
	if email == "" || password == "" {
		lgr.Warn().Msg("Admin credentials not configured, skipping admin seed")
		return nil
	}

	_, err := users.GetUserByEmail(ctx, email)
	if err == nil {
		lgr.Debug().Str("email", email).Msg("Admin account already exists")
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return fmt.Errorf("error checking admin account: %w", err)
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	admin := &appModels.User{
		UserCode:     adminUserCode,
		Email:        email,
		PasswordHash: hash,
		Role:         appModels.RoleAdmin,
		Status:       appModels.StatusInProgress,
	}
	err = users.WithTx(ctx, func(ctx context.Context, tx appRepos.UserTxRepository) error {
		return tx.CreateUser(ctx, admin)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil
		}
		return fmt.Errorf("error creating admin account: %w", err)
	}

	lgr.Info().Str("email", email).Msg("Default admin account created")
	return nil
}
